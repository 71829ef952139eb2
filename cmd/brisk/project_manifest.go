package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noBriskTomlMessage = "no brisk.toml found\nrun `brisk init` to scaffold a project, or cd into one"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Paths   pathsConfig   `toml:"paths"`
	Bundler toolConfig    `toml:"bundler"`
	Serve   serveConfig   `toml:"serve"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type pathsConfig struct {
	Entry    string `toml:"entry"`
	Template string `toml:"template"`
	Public   string `toml:"public"`
	Output   string `toml:"output"`
}

type toolConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

type serveConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Host    string   `toml:"host"`
	Port    int      `toml:"port"`
}

func findBriskToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "brisk.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findBriskToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("bundler", "command") || strings.TrimSpace(cfg.Bundler.Command) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [bundler].command", path)
	}
	applyPathDefaults(&cfg.Paths)
	if cfg.Serve.Host == "" {
		cfg.Serve.Host = "localhost"
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 3000
	}
	return cfg, nil
}

func applyPathDefaults(p *pathsConfig) {
	if p.Entry == "" {
		p.Entry = "src/index.js"
	}
	if p.Template == "" {
		p.Template = "public/index.html"
	}
	if p.Public == "" {
		p.Public = "public"
	}
	if p.Output == "" {
		p.Output = "dist"
	}
}

// resolvePaths anchors the manifest's relative paths at the project root.
func (m *projectManifest) resolvePaths() (entry, template, public, output string) {
	resolve := func(rel string) string {
		if filepath.IsAbs(rel) {
			return filepath.Clean(rel)
		}
		return filepath.Join(m.Root, filepath.FromSlash(rel))
	}
	return resolve(m.Config.Paths.Entry),
		resolve(m.Config.Paths.Template),
		resolve(m.Config.Paths.Public),
		resolve(m.Config.Paths.Output)
}
