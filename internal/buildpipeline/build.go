// Package buildpipeline orchestrates a single production build pass:
// snapshot, clean, copy, one bundler invocation, classification, report.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"brisk/internal/assets"
	"brisk/internal/bundler"
	"brisk/internal/diag"
	"brisk/internal/observ"
	"brisk/internal/sizes"
)

// StatsFileName is the fixed name of the optional stats artefact,
// written into the output directory.
const StatsFileName = "bundle-stats.json"

// ConfigError reports a missing required input file. It is raised
// before the bundler is ever invoked.
type ConfigError struct {
	Path string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("required file missing: %s", e.Path)
}

// Paths holds the resolved project layout for one build.
type Paths struct {
	Root      string
	Entry     string
	Template  string
	PublicDir string
	OutputDir string
}

// BuildRequest configures one build pass.
type BuildRequest struct {
	Paths      Paths
	Bundler    bundler.Bundler
	Mode       string
	SourceMaps bool
	Define     map[string]string

	WriteStats bool
	StrictCI   bool

	// SizeCache, when set, provides the previous successful snapshot as
	// the "before" baseline if the output directory is already empty.
	SizeCache *sizes.Cache

	Progress ProgressSink
	Files    []string
	Timer    *observ.Timer
}

// BuildResult captures the outcome and artefacts of one pass.
type BuildResult struct {
	Outcome   Outcome
	Stats     *bundler.Stats
	Before    sizes.Snapshot
	After     sizes.Snapshot
	StatsPath string
	Timings   Timings
}

// Build runs one pass end to end. The bundler is invoked exactly once;
// nothing is retried. A Failure outcome is reported through
// BuildResult, not through the error return; the error return carries
// configuration and infrastructure failures only.
func Build(ctx context.Context, req *BuildRequest) (result BuildResult, err error) {
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	reqCopy := *req
	req = &reqCopy

	defer func() {
		if r := recover(); r != nil {
			msg := strings.TrimSpace(fmt.Sprint(r))
			if msg == "" || msg == "<nil>" {
				msg = "unknown build failure"
			}
			err = fmt.Errorf("build aborted: %s", msg)
		}
	}()

	if req.Bundler == nil {
		return result, fmt.Errorf("missing bundler")
	}
	for _, required := range []string{req.Paths.Template, req.Paths.Entry} {
		if _, statErr := os.Stat(required); statErr != nil {
			if errors.Is(statErr, os.ErrNotExist) {
				return result, &ConfigError{Path: required}
			}
			return result, fmt.Errorf("failed to stat %q: %w", required, statErr)
		}
	}

	emitQueued(req.Progress, req.Files)

	snapStart := time.Now()
	before, err := measureBefore(req)
	if err != nil {
		emitStage(req.Progress, req.Files, StageSnapshot, StatusError, err, 0)
		return result, err
	}
	result.Before = before
	result.Timings.Set(StageSnapshot, time.Since(snapStart))
	emitStage(req.Progress, req.Files, StageSnapshot, StatusDone, nil, result.Timings.Duration(StageSnapshot))

	if err := prepareOutput(ctx, req, &result); err != nil {
		return result, err
	}

	stats, bundleErr := invokeBundler(ctx, req, &result)
	result.Stats = stats

	set := diag.Classify(stats, bundleErr)
	result.Outcome = Decide(set, req.StrictCI)
	if result.Outcome.Failed() {
		emitStage(req.Progress, req.Files, StageBundle, StatusError, errors.New(result.Outcome.Reason), 0)
		return result, nil
	}
	emitStage(req.Progress, req.Files, StageBundle, StatusDone, nil, result.Timings.Duration(StageBundle))

	if err := finishSuccess(req, &result); err != nil {
		return result, err
	}
	return result, nil
}

// measureBefore captures the pre-build snapshot, falling back to the
// persisted snapshot of the previous successful build when the output
// directory holds nothing to measure.
func measureBefore(req *BuildRequest) (sizes.Snapshot, error) {
	idx := beginPhase(req.Timer, string(StageSnapshot))
	defer endPhase(req.Timer, idx, "")

	before, err := sizes.Measure(req.Paths.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to measure %q: %w", req.Paths.OutputDir, err)
	}
	if len(before) == 0 && req.SizeCache != nil {
		if cached, ok, cacheErr := req.SizeCache.Get(sizes.Key(req.Paths.Root)); cacheErr == nil && ok {
			before = cached
		}
	}
	return before, nil
}

func prepareOutput(ctx context.Context, req *BuildRequest, result *BuildResult) error {
	cleanStart := time.Now()
	emitStage(req.Progress, req.Files, StageClean, StatusWorking, nil, 0)
	idx := beginPhase(req.Timer, string(StageClean))
	if err := assets.EmptyDir(req.Paths.OutputDir); err != nil {
		emitStage(req.Progress, req.Files, StageClean, StatusError, err, 0)
		return err
	}
	endPhase(req.Timer, idx, "")
	result.Timings.Set(StageClean, time.Since(cleanStart))
	emitStage(req.Progress, req.Files, StageClean, StatusDone, nil, result.Timings.Duration(StageClean))

	copyStart := time.Now()
	emitStage(req.Progress, req.Files, StageCopy, StatusWorking, nil, 0)
	idx = beginPhase(req.Timer, string(StageCopy))
	if err := assets.CopyDir(ctx, req.Paths.PublicDir, req.Paths.OutputDir, req.Paths.Template); err != nil {
		emitStage(req.Progress, req.Files, StageCopy, StatusError, err, 0)
		return fmt.Errorf("failed to copy static assets: %w", err)
	}
	endPhase(req.Timer, idx, "")
	result.Timings.Set(StageCopy, time.Since(copyStart))
	emitStage(req.Progress, req.Files, StageCopy, StatusDone, nil, result.Timings.Duration(StageCopy))
	return nil
}

// invokeBundler performs the single synchronous call to the external
// compiler. Its error is a classification input, not a return value.
func invokeBundler(ctx context.Context, req *BuildRequest, result *BuildResult) (*bundler.Stats, error) {
	cfg := bundler.Config{
		Entry:      req.Paths.Entry,
		Template:   req.Paths.Template,
		OutputDir:  req.Paths.OutputDir,
		PublicDir:  req.Paths.PublicDir,
		Mode:       req.Mode,
		SourceMaps: req.SourceMaps,
		Define:     req.Define,
	}
	bundleStart := time.Now()
	emitStage(req.Progress, req.Files, StageBundle, StatusWorking, nil, 0)
	idx := beginPhase(req.Timer, string(StageBundle))
	stats, err := req.Bundler.Bundle(ctx, cfg)
	endPhase(req.Timer, idx, "")
	result.Timings.Set(StageBundle, time.Since(bundleStart))
	return stats, err
}

func finishSuccess(req *BuildRequest, result *BuildResult) error {
	reportStart := time.Now()
	emitStage(req.Progress, req.Files, StageReport, StatusWorking, nil, 0)
	idx := beginPhase(req.Timer, string(StageReport))

	after, err := sizes.Measure(req.Paths.OutputDir)
	if err != nil {
		emitStage(req.Progress, req.Files, StageReport, StatusError, err, 0)
		return fmt.Errorf("failed to measure %q: %w", req.Paths.OutputDir, err)
	}
	result.After = after

	if req.WriteStats && result.Stats != nil && len(result.Stats.Raw) > 0 {
		statsPath := filepath.Join(req.Paths.OutputDir, StatsFileName)
		if err := os.WriteFile(statsPath, result.Stats.Raw, 0o600); err != nil {
			emitStage(req.Progress, req.Files, StageReport, StatusError, err, 0)
			return fmt.Errorf("failed to write stats file: %w", err)
		}
		result.StatsPath = statsPath
	}

	if req.SizeCache != nil {
		// Best effort: a cache write failure must not fail the build.
		_ = req.SizeCache.Put(sizes.Key(req.Paths.Root), after)
	}

	endPhase(req.Timer, idx, fmt.Sprintf("%d files", len(after)))
	result.Timings.Set(StageReport, time.Since(reportStart))
	emitStage(req.Progress, req.Files, StageReport, StatusDone, nil, result.Timings.Duration(StageReport))
	return nil
}

func beginPhase(timer *observ.Timer, name string) int {
	if timer == nil {
		return -1
	}
	return timer.Begin(name)
}

func endPhase(timer *observ.Timer, idx int, note string) {
	if timer == nil {
		return
	}
	timer.End(idx, note)
}
