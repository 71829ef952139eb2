package buildpipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brisk/internal/assets"
	"brisk/internal/bundler"
	"brisk/internal/sizes"
)

// fakeBundler records invocations and optionally writes output files,
// standing in for the external bundler process.
type fakeBundler struct {
	stats  *bundler.Stats
	err    error
	emit   map[string]string
	calls  int
	gotCfg bundler.Config
}

func (f *fakeBundler) Bundle(_ context.Context, cfg bundler.Config) (*bundler.Stats, error) {
	f.calls++
	f.gotCfg = cfg
	for name, content := range f.emit {
		path := filepath.Join(cfg.OutputDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return nil, err
		}
	}
	return f.stats, f.err
}

type project struct {
	paths Paths
}

func newProject(t *testing.T) project {
	t.Helper()
	root := t.TempDir()
	p := project{paths: Paths{
		Root:      root,
		Entry:     filepath.Join(root, "src", "index.js"),
		Template:  filepath.Join(root, "public", "index.html"),
		PublicDir: filepath.Join(root, "public"),
		OutputDir: filepath.Join(root, "dist"),
	}}
	write(t, p.paths.Entry, "console.log('hi')")
	write(t, p.paths.Template, "<html></html>")
	write(t, filepath.Join(p.paths.PublicDir, "favicon.ico"), "icon")
	return p
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func okStats(raw string) *bundler.Stats {
	return &bundler.Stats{Raw: json.RawMessage(raw)}
}

func TestBuild_MissingRequiredFileSkipsBundler(t *testing.T) {
	for _, missing := range []string{"entry", "template"} {
		t.Run(missing, func(t *testing.T) {
			p := newProject(t)
			target := p.paths.Entry
			if missing == "template" {
				target = p.paths.Template
			}
			if err := os.Remove(target); err != nil {
				t.Fatal(err)
			}

			fake := &fakeBundler{stats: okStats(`{}`)}
			_, err := Build(context.Background(), &BuildRequest{Paths: p.paths, Bundler: fake})

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Build() error = %v, want ConfigError", err)
			}
			if cfgErr.Path != target {
				t.Errorf("ConfigError.Path = %q, want %q", cfgErr.Path, target)
			}
			if fake.calls != 0 {
				t.Errorf("bundler invoked %d times on config error, want 0", fake.calls)
			}
		})
	}
}

func TestBuild_SuccessClearsCopiesAndBundlesOnce(t *testing.T) {
	p := newProject(t)
	write(t, filepath.Join(p.paths.OutputDir, "stale.js"), "stale stale stale")

	fake := &fakeBundler{
		stats: okStats(`{"assets":[{"name":"main.js","size":7}]}`),
		emit:  map[string]string{"main.js": "bundled"},
	}
	result, err := Build(context.Background(), &BuildRequest{
		Paths:   p.paths,
		Bundler: fake,
		Mode:    "production",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.Outcome.Failed() {
		t.Fatalf("outcome failed: %s", result.Outcome.Reason)
	}
	if fake.calls != 1 {
		t.Errorf("bundler calls = %d, want exactly 1", fake.calls)
	}
	if fake.gotCfg.Mode != "production" {
		t.Errorf("config mode = %q", fake.gotCfg.Mode)
	}

	if _, err := os.Stat(filepath.Join(p.paths.OutputDir, "stale.js")); !os.IsNotExist(err) {
		t.Error("stale output survived the clean stage")
	}
	if _, err := os.Stat(filepath.Join(p.paths.OutputDir, "favicon.ico")); err != nil {
		t.Errorf("static asset not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.paths.OutputDir, "index.html")); !os.IsNotExist(err) {
		t.Error("template must not be copied directly; the bundler emits it")
	}

	if result.Before["stale.js"] == 0 {
		t.Error("pre-build snapshot missed the stale file")
	}
	if result.After["main.js"] != 7 {
		t.Errorf("post-build snapshot main.js = %d, want 7", result.After["main.js"])
	}
}

func TestBuild_StatsFileWrittenVerbatimOnlyWhenRequested(t *testing.T) {
	raw := `{"assets":[{"name":"main.js","size":7}],"warnings":[],"errors":[],"extra":{"modules":42}}`

	p := newProject(t)
	fake := &fakeBundler{stats: okStats(raw), emit: map[string]string{"main.js": "bundled"}}
	result, err := Build(context.Background(), &BuildRequest{Paths: p.paths, Bundler: fake, WriteStats: true})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.StatsPath == "" {
		t.Fatal("StatsPath empty with WriteStats set")
	}
	got, err := os.ReadFile(result.StatsPath)
	if err != nil {
		t.Fatalf("failed to read stats file: %v", err)
	}
	if !bytes.Equal(got, []byte(raw)) {
		t.Errorf("stats file mutated:\ngot  %s\nwant %s", got, raw)
	}

	// Same build without the flag: no file.
	p2 := newProject(t)
	fake2 := &fakeBundler{stats: okStats(raw)}
	result2, err := Build(context.Background(), &BuildRequest{Paths: p2.paths, Bundler: fake2})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result2.StatsPath != "" {
		t.Error("StatsPath set without WriteStats")
	}
	if _, err := os.Stat(filepath.Join(p2.paths.OutputDir, StatsFileName)); !os.IsNotExist(err) {
		t.Error("stats file written without the flag")
	}
}

func TestBuild_TransportFailureWithSelector(t *testing.T) {
	p := newProject(t)
	fake := &fakeBundler{err: &bundler.RunError{Msg: "postcss exploded", Selector: ".hero"}}

	result, err := Build(context.Background(), &BuildRequest{Paths: p.paths, Bundler: fake})
	if err != nil {
		t.Fatalf("Build() error = %v, classification failures go through the outcome", err)
	}
	if !result.Outcome.Failed() {
		t.Fatal("transport failure must classify as failure")
	}
	if !strings.Contains(result.Outcome.Reason, "postcss exploded") {
		t.Errorf("reason missing original message: %q", result.Outcome.Reason)
	}
	if !strings.Contains(result.Outcome.Reason, ".hero") {
		t.Errorf("reason missing selector suffix: %q", result.Outcome.Reason)
	}
}

func TestBuild_TypeCheckOnlyFailureFlagged(t *testing.T) {
	p := newProject(t)
	fake := &fakeBundler{stats: &bundler.Stats{
		Errors: []bundler.Message{{Text: "TS2345", Origin: bundler.OriginTypeCheck}},
		Raw:    json.RawMessage(`{}`),
	}}

	result, err := Build(context.Background(), &BuildRequest{Paths: p.paths, Bundler: fake})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !result.Outcome.Failed() || !result.Outcome.TypeCheckOnly {
		t.Errorf("outcome = %+v, want type-check-only failure", result.Outcome)
	}
}

func TestBuild_CachedBaselineSurvivesClean(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := sizes.OpenCache("brisk-test")
	if err != nil {
		t.Fatal(err)
	}

	p := newProject(t)
	fake := &fakeBundler{stats: okStats(`{}`), emit: map[string]string{"main.js": "bundled!"}}
	req := &BuildRequest{Paths: p.paths, Bundler: fake, SizeCache: cache}

	first, err := Build(context.Background(), req)
	if err != nil || first.Outcome.Failed() {
		t.Fatalf("first build failed: %v / %+v", err, first.Outcome)
	}

	// Simulate `brisk clean` between the builds.
	if err := os.RemoveAll(p.paths.OutputDir); err != nil {
		t.Fatal(err)
	}
	if err := assets.EmptyDir(p.paths.OutputDir); err != nil {
		t.Fatal(err)
	}

	second, err := Build(context.Background(), req)
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if second.Before["main.js"] != first.After["main.js"] {
		t.Errorf("baseline after clean = %v, want cached %v", second.Before, first.After)
	}
}

func TestBuild_PanicBecomesError(t *testing.T) {
	p := newProject(t)
	_, err := Build(context.Background(), &BuildRequest{Paths: p.paths, Bundler: panicBundler{}})
	if err == nil {
		t.Fatal("Build() must surface a panicking bundler as an error")
	}
	if !strings.Contains(err.Error(), "unknown build failure") {
		t.Errorf("empty panic value should use the placeholder, got %v", err)
	}
}

type panicBundler struct{}

func (panicBundler) Bundle(context.Context, bundler.Config) (*bundler.Stats, error) {
	panic("")
}
