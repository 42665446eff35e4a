package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intake/internal/db"
	"github.com/jonathan/resume-intake/internal/requirements"
	"github.com/jonathan/resume-intake/internal/scores"
	"github.com/jonathan/resume-intake/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for parsing and scoring resumes.
Without a database URL, job postings and scores are kept in memory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger := appConfig, appLogger
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res := &resources{}
	defer res.Close()

	var (
		jobStore   requirements.JobStore
		repository scores.Repository
		health     server.HealthChecker
	)

	if cfg.Database.URL != "" {
		if cfg.Database.RunMigrations {
			version, applied, err := db.Migrate(cfg.Database.URL)
			if err != nil {
				return err
			}
			logger.Info("database migrations checked", zap.Uint("version", version), zap.Bool("applied", applied))
		}

		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		res.add(database.Close)
		jobStore, repository, health = database, database, database
	} else {
		logger.Warn("no database configured; job postings and scores are kept in memory")
		jobStore = requirements.NewMemoryStore()
		repository = scores.NewMemoryRepository()
	}

	parser, err := newParser(ctx, cfg, logger, res)
	if err != nil {
		return err
	}

	resolver := requirements.NewResolver(jobStore, logger)
	scoreService := scores.NewService(repository, nil, logger)

	p, err := newPipeline(cfg, logger, parser, resolver, scoreService)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, server.Deps{
		Scorer:       p,
		Scores:       scoreService,
		Requirements: resolver,
		Health:       health,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
