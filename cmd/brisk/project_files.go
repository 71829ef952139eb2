package main

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// collectInputFiles lists the build inputs (entry plus static assets)
// relative to the project root, for progress display.
func collectInputFiles(root, entry, publicDir string) []string {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if _, ok := seen[rel]; ok {
			return
		}
		seen[rel] = struct{}{}
		files = append(files, rel)
	}

	add(entry)
	_ = filepath.WalkDir(publicDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		add(path)
		return nil
	})
	sort.Strings(files)
	return files
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
