//go:build windows

package devserver

import "os/exec"

// setupProcessControl keeps the default kill on Windows; WaitDelay still
// bounds how long Wait holds onto pipes inherited by orphaned children.
func setupProcessControl(cmd *exec.Cmd) {}
