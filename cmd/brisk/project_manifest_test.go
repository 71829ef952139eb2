package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "brisk.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectConfig_DefaultsApplied(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[bundler]
command = "webpack-adapter"
`)

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig() error = %v", err)
	}
	if cfg.Paths.Entry != "src/index.js" {
		t.Errorf("Entry = %q, want default", cfg.Paths.Entry)
	}
	if cfg.Paths.Template != "public/index.html" {
		t.Errorf("Template = %q, want default", cfg.Paths.Template)
	}
	if cfg.Paths.Output != "dist" {
		t.Errorf("Output = %q, want default", cfg.Paths.Output)
	}
	if cfg.Serve.Host != "localhost" || cfg.Serve.Port != 3000 {
		t.Errorf("Serve defaults = %q:%d", cfg.Serve.Host, cfg.Serve.Port)
	}
}

func TestLoadProjectConfig_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing package",
			content: "[bundler]\ncommand = \"x\"\n",
			wantErr: "missing [package]",
		},
		{
			name:    "missing package name",
			content: "[package]\n\n[bundler]\ncommand = \"x\"\n",
			wantErr: "missing [package].name",
		},
		{
			name:    "missing bundler command",
			content: "[package]\nname = \"demo\"\n",
			wantErr: "missing [bundler].command",
		},
		{
			name:    "blank bundler command",
			content: "[package]\nname = \"demo\"\n\n[bundler]\ncommand = \"  \"\n",
			wantErr: "missing [bundler].command",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.content)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestFindBriskToml_WalksUpParents(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[bundler]\ncommand = \"x\"\n")
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, ok, err := findBriskToml(nested)
	if err != nil {
		t.Fatalf("findBriskToml() error = %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	if filepath.Dir(found) != root {
		t.Errorf("found %q, want manifest in %q", found, root)
	}
}

func TestResolvePaths_AnchoredAtRoot(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[package]\nname = \"demo\"\n\n[bundler]\ncommand = \"x\"\n")
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	manifest := &projectManifest{Path: path, Root: root, Config: cfg}

	entry, template, public, output := manifest.resolvePaths()
	for name, got := range map[string]string{
		"entry": entry, "template": template, "public": public, "output": output,
	} {
		if !filepath.IsAbs(got) || !strings.HasPrefix(got, root) {
			t.Errorf("%s = %q, want under %q", name, got, root)
		}
	}
}
