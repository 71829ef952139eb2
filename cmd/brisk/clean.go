package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the build output directory",
	Long:  "Remove the output directory produced by brisk build.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(_ *cobra.Command, args []string) error {
	baseDir := "."
	if len(args) > 0 && args[0] != "" {
		baseDir = args[0]
	}
	manifest, ok, err := loadProjectManifest(baseDir)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(noBriskTomlMessage)
	}
	_, _, _, outputDir := manifest.resolvePaths()

	info, err := os.Stat(outputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(os.Stdout, "output directory not found\n")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", outputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", outputDir)
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", outputDir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", formatPathForOutput(manifest.Root, filepath.Clean(outputDir)))
	return nil
}
