// Package assets prepares the output directory: clearing stale build
// output and copying static files from the public directory.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EmptyDir removes everything inside dir while preserving dir itself.
// A missing directory is created instead.
func EmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(dir, 0o750)
		}
		return fmt.Errorf("failed to read %q: %w", dir, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear %q: %w", dir, err)
		}
	}
	return nil
}

// CopyDir copies the file tree under src into dst, skipping the given
// source paths. Files are copied concurrently; directory structure is
// created up front. A missing src is a no-op.
func CopyDir(ctx context.Context, src, dst string, skip ...string) error {
	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipSet[filepath.Clean(s)] = struct{}{}
	}

	type copyJob struct {
		from string
		to   string
		mode fs.FileMode
	}
	var jobs []copyJob

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if _, skipped := skipSet[filepath.Clean(path)]; skipped {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		jobs = append(jobs, copyJob{from: path, to: target, mode: info.Mode().Perm()})
		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to walk %q: %w", src, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.NumCPU(), max(len(jobs), 1)))
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return copyFile(job.from, job.to, job.mode)
		})
	}
	return g.Wait()
}

func copyFile(from, to string, mode fs.FileMode) error {
	// #nosec G304 -- paths are derived from the project layout
	in, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", from, err)
	}
	defer func() {
		_ = in.Close()
	}()

	// #nosec G304 -- paths are derived from the project layout
	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", to, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %q: %w", to, err)
	}
	return out.Close()
}
