package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"brisk/internal/devserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Run the development server",
	Long: `Start the external development server for the project and keep it
running. The server is restarted when brisk.toml changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return err
	}
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return err
	}

	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(noBriskTomlMessage)
	}
	if manifest.Config.Serve.Command == "" {
		return fmt.Errorf("%s: missing [serve].command", manifest.Path)
	}
	if port == 0 {
		port = manifest.Config.Serve.Port
	}
	if host == "" {
		host = manifest.Config.Serve.Host
	}

	entry, template, public, _ := manifest.resolvePaths()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := &devserver.Supervisor{
		Command: manifest.Config.Serve.Command,
		Args:    manifest.Config.Serve.Args,
		Config: devserver.Config{
			Host:      host,
			Port:      port,
			Entry:     entry,
			Template:  template,
			PublicDir: public,
			Mode:      "development",
		},
		ManifestPath: manifest.Path,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}

	_, _ = fmt.Fprintf(os.Stdout, "serving %s on http://%s:%d\n", manifest.Config.Package.Name, host, port)
	return sup.Run(ctx)
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (defaults to [serve].port)")
	serveCmd.Flags().String("host", "", "listen host (defaults to [serve].host)")
}
