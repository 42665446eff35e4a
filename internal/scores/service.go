// Package scores persists candidate scores keyed by (candidate, job).
package scores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-intake/internal/db"
	"github.com/jonathan/resume-intake/internal/logging"
	"github.com/jonathan/resume-intake/internal/types"
	"github.com/juju/clock"
	"go.uber.org/zap"
)

// ErrInvalidScore is returned when a score lacks its candidate or job id.
var ErrInvalidScore = errors.New("invalid score")

// Repository is the storage behind a Service. Select methods return nil, nil
// for a missing record. db.DB and MemoryRepository implement it.
type Repository interface {
	UpsertCandidateScore(ctx context.Context, rec *types.ScoreRecord) (*types.ScoreRecord, error)
	SelectCandidateScore(ctx context.Context, candidateID, jobID string) (*types.ScoreRecord, error)
	SelectCandidateScores(ctx context.Context, candidateID string) ([]types.ScoreRecord, error)
	SelectJobScores(ctx context.Context, jobID string, filter types.JobScoreFilter) ([]types.ScoreRecord, error)
}

var (
	_ Repository = (*db.DB)(nil)
	_ Repository = (*MemoryRepository)(nil)
)

// Service stores and lists candidate scores.
type Service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

// NewService creates a Service. A nil clock uses the wall clock.
func NewService(repo Repository, clk clock.Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Service{repo: repo, clock: clk, logger: logging.OrNop(logger)}
}

// SaveScore upserts score and its metadata. Saving the same pair again
// replaces the previous record; the last writer wins.
func (s *Service) SaveScore(ctx context.Context, score types.CandidateScore, meta types.ScoreMetadata) (*types.ScoreRecord, error) {
	if strings.TrimSpace(score.CandidateID) == "" || strings.TrimSpace(score.JobID) == "" {
		return nil, fmt.Errorf("%w: candidateId and jobId are required", ErrInvalidScore)
	}

	now := s.clock.Now().UTC()
	rec := &types.ScoreRecord{
		ID:        uuid.NewString(),
		Score:     score,
		Metadata:  meta,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.repo.UpsertCandidateScore(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	s.logger.Info("candidate score saved",
		append(logging.RequestFields(score.CandidateID, score.JobID, meta.CorrelationID),
			zap.String("score_id", saved.ID),
			zap.Float64("overall_score", score.OverallScore),
			zap.Bool("auto_rejected", meta.AutoRejected),
		)...,
	)
	return saved, nil
}

// GetScore returns the record for one pair. found is false when none exists.
func (s *Service) GetScore(ctx context.Context, candidateID, jobID string) (*types.ScoreRecord, bool, error) {
	rec, err := s.repo.SelectCandidateScore(ctx, candidateID, jobID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get score: %w", err)
	}
	return rec, rec != nil, nil
}

// GetCandidateScores lists every score of a candidate, newest first.
func (s *Service) GetCandidateScores(ctx context.Context, candidateID string) ([]types.ScoreRecord, error) {
	records, err := s.repo.SelectCandidateScores(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate scores: %w", err)
	}
	return records, nil
}

// GetJobScores lists a job's scores by descending overall score.
func (s *Service) GetJobScores(ctx context.Context, jobID string, filter types.JobScoreFilter) ([]types.ScoreRecord, error) {
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidScore)
	}
	records, err := s.repo.SelectJobScores(ctx, jobID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list job scores: %w", err)
	}
	return records, nil
}
