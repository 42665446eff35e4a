// Package parsing turns resume text into structured candidate data with a
// single structured-output model call.
package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jonathan/resume-intake/internal/cache"
	"github.com/jonathan/resume-intake/internal/extraction"
	"github.com/jonathan/resume-intake/internal/llm"
	"github.com/jonathan/resume-intake/internal/logging"
	"github.com/jonathan/resume-intake/internal/prompts"
	"github.com/jonathan/resume-intake/internal/schemas"
	"github.com/jonathan/resume-intake/internal/types"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single model call when Options.Timeout is zero.
const DefaultTimeout = 60 * time.Second

const cacheNamespace = "resume:parsed"

// Options configures a Parser. The zero value is usable.
type Options struct {
	Logger   *zap.Logger
	Cache    cache.Cache
	CacheTTL time.Duration
	Timeout  time.Duration
	Tier     llm.ModelTier
	Provider string
}

// Parser extracts ParsedResumeData from resume files and text.
type Parser struct {
	client   llm.Client
	cache    cache.Cache
	logger   *zap.Logger
	cacheTTL time.Duration
	timeout  time.Duration
	tier     llm.ModelTier
	provider string
}

// NewParser creates a Parser calling client.
func NewParser(client llm.Client, opts Options) *Parser {
	p := &Parser{
		client:   client,
		cache:    opts.Cache,
		logger:   logging.OrNop(opts.Logger),
		cacheTTL: opts.CacheTTL,
		timeout:  opts.Timeout,
		tier:     opts.Tier,
		provider: opts.Provider,
	}
	if p.cache == nil {
		p.cache = cache.Nop{}
	}
	if p.cacheTTL <= 0 {
		p.cacheTTL = cache.DefaultTTL
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	if p.tier == "" {
		p.tier = llm.TierStandard
	}
	return p
}

// ModelVersion returns the model name used for parsing.
func (p *Parser) ModelVersion() string {
	return p.client.GetModel(p.tier)
}

// ParseResume decodes base64Content, extracts its text and parses it.
// The MIME type is inferred from fileName.
func (p *Parser) ParseResume(ctx context.Context, base64Content, fileName string) (*types.ParsedResumeData, error) {
	data, err := DecodeBase64(base64Content)
	if err != nil {
		return nil, &ParseError{Message: "failed to decode file content", Cause: err}
	}
	return p.ParseDocument(ctx, data, fileName, "")
}

// ParseDocument extracts text from raw file bytes and parses it.
func (p *Parser) ParseDocument(ctx context.Context, data []byte, fileName, mimeType string) (*types.ParsedResumeData, error) {
	content, err := extraction.ExtractFile(ctx, data, fileName, mimeType)
	if err != nil {
		return nil, &ParseError{Message: "failed to extract text from " + fileName, Cause: err}
	}
	return p.parse(ctx, content.Text, fileName)
}

// ParseText parses already extracted resume text.
func (p *Parser) ParseText(ctx context.Context, text string) (*types.ParsedResumeData, error) {
	return p.parse(ctx, text, "")
}

func (p *Parser) parse(ctx context.Context, text, fileName string) (*types.ParsedResumeData, error) {
	text = extraction.NormalizeText(text)
	if len([]rune(text)) < extraction.MinContentLength {
		return nil, &ParseError{Message: "resume text too short", Cause: extraction.ErrEmptyContent}
	}

	model := p.ModelVersion()
	logger := p.logger.With(logging.ModelFields(p.provider, model)...)
	if fileName != "" {
		logger = logger.With(zap.String(logging.FieldFileName, fileName))
	}
	start := time.Now()
	logger.Info("resume parse started", zap.Int("text_length", len(text)))

	key := cache.Key(cacheNamespace, model, text)
	var cached types.ParsedResumeData
	if found, err := p.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warn("resume cache read failed", zap.Error(err))
	} else if found {
		logger.Info("resume parse completed",
			zap.Bool("cached", true),
			zap.Int("skills_count", cached.SkillsCount()),
			zap.Int("experience_count", cached.ExperienceCount()),
		)
		return &cached, nil
	}

	parsed, err := p.generate(ctx, text, fileName)
	if err != nil {
		logger.Error("resume parse failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	if err := p.cache.SetJSON(ctx, key, parsed, p.cacheTTL); err != nil {
		logger.Warn("resume cache write failed", zap.Error(err))
	}

	logger.Info("resume parse completed",
		zap.Bool("cached", false),
		zap.Int("skills_count", parsed.SkillsCount()),
		zap.Int("experience_count", parsed.ExperienceCount()),
		zap.Duration("duration", time.Since(start)),
	)
	return parsed, nil
}

// generate issues the model call and post-processes the response.
func (p *Parser) generate(ctx context.Context, text, fileName string) (*types.ParsedResumeData, error) {
	prompt, err := prompts.Render("parsing.json", "extract-resume", map[string]string{
		"FileName":   fileName,
		"ResumeText": text,
	})
	if err != nil {
		return nil, &ParseError{Message: "failed to build prompt", Cause: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.client.GenerateStructured(callCtx, prompt, ResumeSchema(), p.tier)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = &APICallError{Message: "model call timed out after " + p.timeout.String(), Cause: err}
		} else {
			err = &APICallError{Message: "failed to generate structured content", Cause: err}
		}
		return nil, &ParseError{Message: "model call failed", Cause: err}
	}

	return decodeResponse(raw)
}

// decodeResponse validates and normalizes the model's JSON.
func decodeResponse(raw string) (*types.ParsedResumeData, error) {
	body := []byte(llm.CleanJSONBlock(raw))

	if err := schemas.ValidateParsedResume(body); err != nil {
		return nil, &ParseError{Message: "model output does not match the resume schema", Cause: err}
	}

	var parsed types.ParsedResumeData
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal model output", Cause: err}
	}

	sanitizeResume(&parsed)
	normalizeResume(&parsed)

	if err := checkInvariants(&parsed); err != nil {
		return nil, &ParseError{Message: "parsed resume is incomplete", Cause: err}
	}
	return &parsed, nil
}
