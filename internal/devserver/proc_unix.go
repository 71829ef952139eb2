//go:build !windows

package devserver

import (
	"os/exec"
	"syscall"
)

// setupProcessControl помещает dev-сервер в собственную группу процессов,
// чтобы остановка добивала всё дерево, а не только прямого потомка.
func setupProcessControl(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		// Negative pid addresses the whole process group.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
