// Package requirements resolves a job posting's declared requirements for scoring.
// Resolution never fails: missing or malformed data degrades to defaults.
package requirements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-intake/internal/logging"
	"github.com/jonathan/resume-intake/internal/types"
	"go.uber.org/zap"
)

// JobStore loads job postings. A nil posting with a nil error means not found.
type JobStore interface {
	SelectJobPosting(ctx context.Context, id string) (*types.JobPosting, error)
}

// Status tells whether requirements came from the job or from defaults.
type Status string

const (
	StatusResolved Status = "resolved"
	StatusFallback Status = "fallback"
)

// Resolution is the outcome of resolving one job.
type Resolution struct {
	Requirements    types.JobRequirements `json:"requirements"`
	Status          Status                `json:"status"`
	Reason          string                `json:"reason,omitempty"`
	DefaultedFields []string              `json:"defaultedFields,omitempty"`
}

// IsFallback reports whether the fixed fallback requirements were used.
func (r Resolution) IsFallback() bool {
	return r.Status == StatusFallback
}

// Resolver reads job requirements from a JobStore.
type Resolver struct {
	store  JobStore
	logger *zap.Logger
}

// NewResolver creates a Resolver. A nil store always falls back.
func NewResolver(store JobStore, logger *zap.Logger) *Resolver {
	return &Resolver{store: store, logger: logging.OrNop(logger)}
}

// GetJobRequirements returns the requirements for jobID, never failing.
func (r *Resolver) GetJobRequirements(ctx context.Context, jobID string) types.JobRequirements {
	return r.Resolve(ctx, jobID).Requirements
}

// Resolve returns the requirements for jobID tagged with how they were obtained.
func (r *Resolver) Resolve(ctx context.Context, jobID string) Resolution {
	if r.store == nil {
		return r.fallback(jobID, "no job store configured", nil)
	}

	posting, err := r.store.SelectJobPosting(ctx, jobID)
	if err != nil {
		return r.fallback(jobID, "job lookup failed", err)
	}
	if posting == nil {
		return r.fallback(jobID, "job not found", nil)
	}

	fields, err := decodeContent(posting.Content)
	if err != nil {
		return r.fallback(jobID, "job content is not a JSON object", err)
	}

	reqs, defaulted, found := extract(fields)
	if found == 0 {
		return r.fallback(jobID, "job content lacks the expected fields", nil)
	}

	reqs.ID = jobID
	if reqs.Title == "" {
		reqs.Title = strings.TrimSpace(posting.Title)
	}
	if reqs.Title == "" {
		reqs.Title = DefaultTitle
	}

	if len(defaulted) > 0 {
		r.logger.Warn("job requirements partially defaulted",
			zap.String(logging.FieldJobID, jobID),
			zap.Strings("defaulted_fields", defaulted),
		)
	}

	return Resolution{
		Requirements:    reqs,
		Status:          StatusResolved,
		DefaultedFields: defaulted,
	}
}

func (r *Resolver) fallback(jobID, reason string, err error) Resolution {
	fields := []zap.Field{zap.String(logging.FieldJobID, jobID), zap.String("reason", reason)}
	if err != nil {
		fields = append(fields, zap.Error(err))
		reason = fmt.Sprintf("%s: %v", reason, err)
	}
	r.logger.Warn("using fallback job requirements", fields...)

	return Resolution{
		Requirements: Fallback(jobID),
		Status:       StatusFallback,
		Reason:       reason,
	}
}

// decodeContent accepts a JSON object, or a JSON string holding one.
func decodeContent(content []byte) (map[string]any, error) {
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, errors.New("content is empty")
	}

	var value any
	if err := json.Unmarshal(content, &value); err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok {
		if err := json.Unmarshal([]byte(s), &value); err != nil {
			return nil, fmt.Errorf("content string: %w", err)
		}
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("content is %T", value)
	}
	return fields, nil
}
