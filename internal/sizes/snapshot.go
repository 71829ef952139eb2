// Package sizes keeps file-size bookkeeping for build output: snapshots
// of the output directory before and after a pass, per-file deltas, and
// a small persisted cache of the last successful snapshot.
package sizes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Snapshot maps an output file path (slash-separated, relative to the
// output directory) to its size in bytes. A snapshot is captured once
// and never mutated afterwards.
type Snapshot map[string]int64

// Measure captures a snapshot of dir. A missing directory yields an
// empty snapshot, not an error.
func Measure(dir string) (Snapshot, error) {
	snap := Snapshot{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		snap[filepath.ToSlash(rel)] = info.Size()
		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, nil
		}
		return nil, err
	}
	return snap, nil
}

// Total returns the sum of all file sizes in the snapshot.
func (s Snapshot) Total() int64 {
	var total int64
	for _, size := range s {
		total += size
	}
	return total
}
