// Package main provides the entry point for the resume intake API and its
// local tooling.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/logging"
)

var (
	configPath string

	appConfig *config.Config
	appLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume_api",
	Short: "Resume intake HTTP API server",
	Long: "Resume intake parses uploaded resumes with a language model, scores candidates " +
		"against job requirements and stores the scores.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML, JSON or TOML config file")
}

// loadConfig loads and validates the configuration and builds the logger
// before any subcommand runs.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	appConfig = cfg
	appLogger = logger
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
