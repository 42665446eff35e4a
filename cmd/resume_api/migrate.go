package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply the embedded schema migrations to the database at DATABASE_URL.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if appConfig.Database.URL == "" {
		return fmt.Errorf("a database URL is required (set DATABASE_URL or %s_DATABASE_URL)", config.EnvPrefix)
	}

	version, applied, err := db.Migrate(appConfig.Database.URL)
	if err != nil {
		return err
	}

	appLogger.Info("database migrations checked", zap.Uint("version", version), zap.Bool("applied", applied))
	if applied {
		fmt.Fprintf(cmd.OutOrStdout(), "migrated to version %d\n", version)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "already at version %d\n", version)
	}
	return nil
}
