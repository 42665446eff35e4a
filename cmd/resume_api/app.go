package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-intake/internal/cache"
	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/llm"
	"github.com/jonathan/resume-intake/internal/parsing"
	"github.com/jonathan/resume-intake/internal/pipeline"
	"github.com/jonathan/resume-intake/internal/scoring"
)

// resources collects what a command must release on exit, in reverse order.
type resources struct {
	closers []func()
}

func (r *resources) add(fn func()) {
	r.closers = append(r.closers, fn)
}

func (r *resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// newCache returns the parsed resume cache the configuration asks for:
// Redis when a URL is set, otherwise an in-process cache.
func newCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (cache.Cache, error) {
	if !cfg.Enabled {
		return cache.Nop{}, nil
	}
	if cfg.RedisURL == "" {
		logger.Info("using in-memory parse cache")
		return cache.NewMemory(nil), nil
	}

	redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, logger)
	if err != nil {
		return nil, err
	}
	if redisCache.Available() {
		logger.Info("using redis parse cache")
	}
	return redisCache, nil
}

// newParser builds the model client, cache and resume parser.
func newParser(ctx context.Context, cfg *config.Config, logger *zap.Logger, res *resources) (*parsing.Parser, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("an LLM API key is required (set GEMINI_API_KEY or %s_LLM_API_KEY)", config.EnvPrefix)
	}

	llmConfig := llm.NewConfig(cfg.LLM.Provider, cfg.LLM.Models, cfg.LLM.Timeout)
	client, err := llm.NewClient(ctx, llmConfig, cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	res.add(func() { _ = client.Close() })

	parseCache, err := newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	res.add(func() { _ = parseCache.Close() })

	return parsing.NewParser(client, parsing.Options{
		Logger:   logger,
		Cache:    parseCache,
		CacheTTL: cfg.Cache.TTL,
		Timeout:  llmConfig.Timeout,
		Provider: string(llmConfig.Provider),
	}), nil
}

// newPipeline wires a pipeline with the configured weights, rejection policy
// and upload limit.
func newPipeline(cfg *config.Config, logger *zap.Logger, parser pipeline.ResumeParser,
	resolver pipeline.RequirementsResolver, saver pipeline.ScoreSaver) (*pipeline.Pipeline, error) {
	maxUpload, err := cfg.MaxUploadBytes()
	if err != nil {
		return nil, err
	}

	engine := scoring.NewEngine(scoring.WithWeights(scoring.WeightsFromConfig(cfg.Scoring)))
	return pipeline.New(parser, resolver, engine, saver, pipeline.Options{
		Logger:      logger,
		Policy:      scoring.PolicyFromConfig(cfg.Scoring),
		MaxFileSize: maxUpload,
	}), nil
}
