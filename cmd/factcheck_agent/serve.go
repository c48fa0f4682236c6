package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/factcheck-agent/internal/config"
	"github.com/jonathan/factcheck-agent/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the /factcheck and /factcheck/report endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := buildConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

// buildConfig assembles the runtime configuration: environment values take
// precedence, with an optional config file supplying defaults.
func buildConfig(path string) (*config.Config, error) {
	cfg := config.FromEnv()
	if path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		merged.UseBrowser = cfg.UseBrowser || fileCfg.UseBrowser
		cfg = &merged
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
