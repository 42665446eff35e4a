// Package pipeline provides the high-level orchestration for scoring a resume against a job.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/juju/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-intake/internal/extraction"
	"github.com/jonathan/resume-intake/internal/logging"
	"github.com/jonathan/resume-intake/internal/parsing"
	"github.com/jonathan/resume-intake/internal/requirements"
	"github.com/jonathan/resume-intake/internal/scoring"
	"github.com/jonathan/resume-intake/internal/types"
	"github.com/jonathan/resume-intake/internal/urls"
)

// Stage names reported through progress events.
const (
	StageExtract      = "extract"
	StageParse        = "parse"
	StageURLs         = "extract_urls"
	StageRequirements = "resolve_requirements"
	StageScore        = "score"
	StageSave         = "save"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage         string `json:"stage"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Content       any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// ResumeParser turns extracted resume text into structured data.
type ResumeParser interface {
	ParseText(ctx context.Context, text string) (*types.ParsedResumeData, error)
	ModelVersion() string
}

// RequirementsResolver supplies the requirements a job is scored against.
type RequirementsResolver interface {
	Resolve(ctx context.Context, jobID string) requirements.Resolution
}

// ScoreSaver persists a finished score.
type ScoreSaver interface {
	SaveScore(ctx context.Context, score types.CandidateScore, meta types.ScoreMetadata) (*types.ScoreRecord, error)
}

// Options holds the optional collaborators of a Pipeline.
type Options struct {
	Logger      *zap.Logger
	Clock       clock.Clock
	Policy      scoring.RejectionPolicy
	MaxFileSize int64 // bytes; 0 means unlimited
	OnProgress  ProgressCallback
}

// Pipeline scores one resume against one job per call. It is safe for concurrent use.
type Pipeline struct {
	parser      ResumeParser
	resolver    RequirementsResolver
	engine      *scoring.Engine
	saver       ScoreSaver
	policy      scoring.RejectionPolicy
	clock       clock.Clock
	logger      *zap.Logger
	maxFileSize int64
	onProgress  ProgressCallback
}

// New creates a Pipeline. A nil saver disables persistence and a nil resolver
// always uses the fallback requirements.
func New(parser ResumeParser, resolver RequirementsResolver, engine *scoring.Engine, saver ScoreSaver, opts Options) *Pipeline {
	p := &Pipeline{
		parser:      parser,
		resolver:    resolver,
		engine:      engine,
		saver:       saver,
		policy:      opts.Policy,
		clock:       opts.Clock,
		logger:      logging.OrNop(opts.Logger),
		maxFileSize: opts.MaxFileSize,
		onProgress:  opts.OnProgress,
	}
	if p.clock == nil {
		p.clock = clock.WallClock
	}
	if p.engine == nil {
		p.engine = scoring.NewEngine(scoring.WithClock(p.clock))
	}
	if p.resolver == nil {
		p.resolver = requirements.NewResolver(nil, p.logger)
	}
	return p
}

// ParseResult is the outcome of parsing a resume without scoring it.
type ParseResult struct {
	ParsedData    *types.ParsedResumeData `json:"parsedData"`
	ExtractedURLs types.ExtractedURLs     `json:"extractedUrls"`
	Pages         int                     `json:"pages,omitempty"`
}

// Result is the outcome of scoring a resume.
type Result struct {
	ParsedData         *types.ParsedResumeData `json:"parsedData"`
	Score              types.CandidateScore    `json:"score"`
	Metadata           types.ScoreMetadata     `json:"metadata"`
	ExtractedURLs      types.ExtractedURLs     `json:"extractedUrls"`
	RequirementsStatus requirements.Status     `json:"requirementsStatus"`
	RecordID           string                  `json:"recordId,omitempty"`
}

// emitProgress calls the progress callback if configured
func (p *Pipeline) emitProgress(correlationID, stage, message string, content any) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{
			Stage:         stage,
			Message:       message,
			CorrelationID: correlationID,
			Content:       content,
		})
	}
}

// Parse extracts and parses a resume without scoring or persisting anything.
func (p *Pipeline) Parse(ctx context.Context, req types.ParseResumeRequest) (*ParseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return p.parseDocument(ctx, "", req.FileContent, req.FileName, req.MIMEType)
}

// Process validates req, parses the resume, scores it against the job and
// saves the score. Nothing is saved unless the whole score was computed.
func (p *Pipeline) Process(ctx context.Context, req types.ScoreResumeRequest) (*Result, error) {
	start := p.clock.Now()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	correlationID := strings.TrimSpace(req.CorrelationID)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	logger := p.logger.With(logging.RequestFields(req.CandidateID, req.JobID, correlationID)...)
	logger.Info("resume scoring started", zap.String(logging.FieldFileName, req.FileName))

	parsed, err := p.parseDocument(ctx, correlationID, req.FileContent, req.FileName, req.MIMEType)
	if err != nil {
		logger.Error("resume scoring failed", zap.Error(err))
		return nil, err
	}

	resolution := p.resolver.Resolve(ctx, req.JobID)
	p.emitProgress(correlationID, StageRequirements, "Resolved job requirements", resolution)

	score := p.engine.Score(parsed.ParsedData, resolution.Requirements)
	score.CandidateID = req.CandidateID
	score.JobID = req.JobID

	meta := types.ScoreMetadata{
		CorrelationID:        correlationID,
		ModelVersion:         p.parser.ModelVersion(),
		FallbackRequirements: resolution.IsFallback(),
	}
	// Fallback requirements describe no real job, so they never reject.
	if !resolution.IsFallback() {
		p.policy.Evaluate(score).Apply(&meta)
	}
	meta.ProcessingTimeMs = p.clock.Now().Sub(start).Milliseconds()
	p.emitProgress(correlationID, StageScore,
		fmt.Sprintf("Scored candidate: %.1f overall", score.OverallScore), score)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		ParsedData:         parsed.ParsedData,
		Score:              score,
		Metadata:           meta,
		ExtractedURLs:      parsed.ExtractedURLs,
		RequirementsStatus: resolution.Status,
	}

	if p.saver != nil {
		rec, err := p.saver.SaveScore(ctx, score, meta)
		if err != nil {
			logger.Error("resume scoring failed", zap.Error(err))
			return nil, err
		}
		result.RecordID = rec.ID
		p.emitProgress(correlationID, StageSave, "Saved candidate score", rec.ID)
	}

	logger.Info("resume scoring completed",
		zap.Float64("overall_score", score.OverallScore),
		zap.Int("missing_required_skills", len(score.MissingRequiredSkills)),
		zap.Bool("auto_rejected", meta.AutoRejected),
		zap.Bool("fallback_requirements", meta.FallbackRequirements),
		zap.Int64("processing_time_ms", meta.ProcessingTimeMs),
	)
	return result, nil
}

// parseDocument decodes and extracts the file once, then runs the model parse
// and URL extraction concurrently over the same text.
func (p *Pipeline) parseDocument(ctx context.Context, correlationID, fileContent, fileName, mimeType string) (*ParseResult, error) {
	data, err := parsing.DecodeBase64(fileContent)
	if err != nil {
		return nil, err
	}
	if p.maxFileSize > 0 && int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds the %s limit", ErrFileTooLarge,
			units.HumanSize(float64(len(data))), units.HumanSize(float64(p.maxFileSize)))
	}

	content, err := extraction.ExtractFile(ctx, data, fileName, mimeType)
	if err != nil {
		return nil, &parsing.ParseError{Message: "failed to extract text from " + fileName, Cause: err}
	}
	p.emitProgress(correlationID, StageExtract,
		fmt.Sprintf("Extracted %d characters", len(content.Text)), nil)

	var parsed *types.ParsedResumeData
	var links types.ExtractedURLs

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		parsed, err = p.parser.ParseText(gCtx, content.Text)
		return err
	})
	g.Go(func() error {
		links = urls.Extract(content.Text, content.AnnotationLinks)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.emitProgress(correlationID, StageParse, "Parsed resume", parsed)
	p.emitProgress(correlationID, StageURLs, "Extracted profile links", links)

	parsed.FillProfileURLs(links)
	return &ParseResult{ParsedData: parsed, ExtractedURLs: links, Pages: content.Pages}, nil
}
