package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"brisk/internal/buildpipeline"
	"brisk/internal/bundler"
	"brisk/internal/observ"
	"brisk/internal/sizes"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags]",
	Short: "Create a production build",
	Long:  "Run one production pass of the external bundler, report output sizes, and optionally persist the raw bundler statistics.",
	Args:  cobra.NoArgs,
	RunE:  buildExecution,
}

var (
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen, color.Bold)
)

func buildExecution(cmd *cobra.Command, _ []string) error {
	writeStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}
	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}
	sourceMaps, err := cmd.Flags().GetBool("source-map")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	if mode != "production" && mode != "development" {
		return fmt.Errorf("unsupported mode: %s (supported: production, development)", mode)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, manifestFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if !manifestFound {
		return errors.New(noBriskTomlMessage)
	}

	entry, template, public, output := manifest.resolvePaths()
	envCfg := readEnvConfig(os.LookupEnv)

	// Отсутствие кеша не мешает сборке — просто не будет baseline
	// после brisk clean.
	cache, cacheErr := sizes.OpenCache("brisk")
	if cacheErr != nil {
		cache = nil
	}

	files := collectInputFiles(manifest.Root, entry, public)

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	req := &buildpipeline.BuildRequest{
		Paths: buildpipeline.Paths{
			Root:      manifest.Root,
			Entry:     entry,
			Template:  template,
			PublicDir: public,
			OutputDir: output,
		},
		Bundler:    bundler.NewExec(manifest.Config.Bundler.Command, manifest.Config.Bundler.Args...),
		Mode:       mode,
		SourceMaps: sourceMaps,
		WriteStats: writeStats,
		StrictCI:   envCfg.StrictCI,
		SizeCache:  cache,
		Files:      files,
		Timer:      timer,
	}

	useTUI := shouldUseTUI(uiModeValue) && !quiet
	var res buildpipeline.BuildResult
	if useTUI && len(files) > 0 {
		res, err = runBuildWithUI(cmd.Context(), "brisk build", files, req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), req)
	}
	if err != nil {
		printStageTimings(os.Stdout, res.Timings)
		return err
	}

	return reportBuildOutcome(cmd, res, envCfg, quiet, showTimings, timer)
}

func reportBuildOutcome(cmd *cobra.Command, res buildpipeline.BuildResult, envCfg envConfig, quiet, showTimings bool, timer *observ.Timer) error {
	out := cmd.OutOrStdout()

	if res.Outcome.Failed() {
		if res.Outcome.TypeCheckOnly && envCfg.TolerateTypeErrors {
			if _, err := warnColor.Fprintln(out, "compiled with type errors:"); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out, res.Outcome.Reason); err != nil {
				return err
			}
			return nil
		}
		return errors.New(res.Outcome.Reason)
	}

	if !quiet {
		if len(res.Outcome.Warnings) > 0 {
			if _, err := warnColor.Fprintln(out, "compiled with warnings:"); err != nil {
				return err
			}
			for _, w := range res.Outcome.Warnings {
				if _, err := fmt.Fprintln(out, w.Message); err != nil {
					return err
				}
			}
		} else {
			if _, err := okColor.Fprintln(out, "compiled successfully"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(out, "\nfile sizes after build:"); err != nil {
			return err
		}
		if err := sizes.Render(out, res.Before, res.After); err != nil {
			return err
		}
		if res.StatsPath != "" {
			if _, err := fmt.Fprintf(out, "stats written to %s\n", formatPathForOutput(cwdOrDot(), res.StatsPath)); err != nil {
				return err
			}
		}
	}

	printStageTimings(out, res.Timings)
	if showTimings && timer != nil {
		if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
			return err
		}
	}
	return nil
}

func cwdOrDot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func init() {
	buildCmd.Flags().Bool("stats", false, "write raw bundler statistics to "+buildpipeline.StatsFileName)
	buildCmd.Flags().String("mode", "production", "build mode (production, development)")
	buildCmd.Flags().Bool("source-map", true, "emit source maps")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
}
