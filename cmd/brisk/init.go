package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new brisk project",
	Long: `Initialize a new brisk project by creating a project manifest (brisk.toml),
an HTML template (public/index.html) and an entry point (src/index.js).
If [path|name] is omitted, initializes the current directory. If a
non-existing name is provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(_ *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "brisk-app"
	}

	manifestPath := filepath.Join(target, "brisk.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	created := []string{"brisk.toml"}
	scaffold := []struct {
		rel     string
		content string
	}{
		{filepath.Join("public", "index.html"), defaultTemplate(name)},
		{filepath.Join("src", "index.js"), defaultEntry(name)},
	}
	for _, file := range scaffold {
		path := filepath.Join(target, file.rel)
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			created = append(created, file.rel+" (existing)")
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create %q: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(file.content), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.rel, err)
		}
		created = append(created, file.rel)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized brisk project in %s\n", rel)
	for _, entry := range created {
		fmt.Fprintf(os.Stdout, "  - %s\n", filepath.ToSlash(entry))
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a brisk
// project using the provided package name.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Brisk project manifest
[package]
name = "%s"

[paths]
entry = "src/index.js"
template = "public/index.html"
public = "public"
output = "dist"

[bundler]
command = "webpack-adapter"

[serve]
command = "webpack-dev-adapter"
host = "localhost"
port = 3000
`, name)
}

func defaultTemplate(name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%s</title>
  </head>
  <body>
    <div id="root"></div>
  </body>
</html>
`, name)
}

func defaultEntry(name string) string {
	return fmt.Sprintf("document.getElementById('root').textContent = 'Hello from %s';\n", name)
}
