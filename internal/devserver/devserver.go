// Package devserver supervises the external development server process.
// The server itself (transform pipeline, hot reload transport) is a
// black box: brisk only hands it a config, keeps it running, and
// restarts it when the project manifest changes.
package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config is handed to the dev server on stdin as JSON.
type Config struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Entry     string `json:"entry"`
	Template  string `json:"template"`
	PublicDir string `json:"publicDir"`
	Mode      string `json:"mode"`
}

// Supervisor runs the external dev server and restarts it whenever the
// watched manifest file changes.
type Supervisor struct {
	Command      string
	Args         []string
	Config       Config
	ManifestPath string

	Stdout io.Writer
	Stderr io.Writer

	// RestartDelay debounces bursts of manifest writes. Zero means a
	// sensible default.
	RestartDelay time.Duration
}

// Run blocks until ctx is cancelled or the dev server exits on its own.
// A cancelled context is a clean shutdown, not an error.
func (s *Supervisor) Run(ctx context.Context) error {
	if s == nil || s.Command == "" {
		return fmt.Errorf("no dev server command configured")
	}
	if _, err := exec.LookPath(s.Command); err != nil {
		return fmt.Errorf("dev server %q not found in PATH", s.Command)
	}

	delay := s.RestartDelay
	if delay == 0 {
		delay = 300 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	// Editors replace files on save; the parent directory keeps events
	// flowing across the rename.
	if s.ManifestPath != "" {
		if err := watcher.Add(filepath.Dir(s.ManifestPath)); err != nil {
			return fmt.Errorf("failed to watch %q: %w", s.ManifestPath, err)
		}
	}

	for {
		restart, err := s.runOnce(ctx, watcher, delay)
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

// runOnce starts the server and waits for shutdown, exit, or a manifest
// change. The bool result asks the caller to start the server again.
func (s *Supervisor) runOnce(ctx context.Context, watcher *fsnotify.Watcher, delay time.Duration) (bool, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	payload, err := json.Marshal(s.Config)
	if err != nil {
		return false, fmt.Errorf("failed to encode dev server config: %w", err)
	}

	// #nosec G204 -- command comes from the project manifest
	cmd := exec.CommandContext(runCtx, s.Command, s.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	// Dev servers spawned through a shell leave grandchildren holding
	// the stdout pipe; without a bound Wait would block on the orphan.
	cmd.WaitDelay = 3 * time.Second
	setupProcessControl(cmd)
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("failed to start dev server: %w", err)
	}

	exitCh := make(chan error, 1)
	go func() {
		exitCh <- cmd.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			cancel()
			<-exitCh
			return false, nil
		case exitErr := <-exitCh:
			if exitErr != nil && !errors.Is(runCtx.Err(), context.Canceled) {
				return false, fmt.Errorf("dev server exited: %w", exitErr)
			}
			return false, nil
		case ev := <-watcher.Events:
			if !s.isManifestChange(ev) {
				continue
			}
			drainEvents(watcher, delay)
			cancel()
			<-exitCh
			return true, nil
		case watchErr := <-watcher.Errors:
			cancel()
			<-exitCh
			return false, fmt.Errorf("watcher failed: %w", watchErr)
		}
	}
}

func (s *Supervisor) isManifestChange(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(s.ManifestPath) {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// drainEvents swallows the burst of events an editor emits for a single
// save, so one save causes one restart.
func drainEvents(watcher *fsnotify.Watcher, window time.Duration) {
	timer := time.NewTimer(window)
	defer timer.Stop()
	for {
		select {
		case <-watcher.Events:
		case <-watcher.Errors:
		case <-timer.C:
			return
		}
	}
}
