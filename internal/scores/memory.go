package scores

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/jonathan/resume-intake/internal/types"
)

type pairKey struct {
	candidateID string
	jobID       string
}

// MemoryRepository is an in-process Repository for tests and local runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[pairKey]types.ScoreRecord
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[pairKey]types.ScoreRecord)}
}

// UpsertCandidateScore implements Repository. On conflict the ID and creation
// time of the stored record are kept.
func (r *MemoryRepository) UpsertCandidateScore(ctx context.Context, rec *types.ScoreRecord) (*types.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{rec.Score.CandidateID, rec.Score.JobID}
	stored := cloneRecord(*rec)
	if existing, ok := r.records[key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	}
	r.records[key] = stored

	out := cloneRecord(stored)
	return &out, nil
}

// SelectCandidateScore implements Repository.
func (r *MemoryRepository) SelectCandidateScore(ctx context.Context, candidateID, jobID string) (*types.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[pairKey{candidateID, jobID}]
	if !ok {
		return nil, nil
	}
	out := cloneRecord(rec)
	return &out, nil
}

// SelectCandidateScores implements Repository.
func (r *MemoryRepository) SelectCandidateScores(ctx context.Context, candidateID string) ([]types.ScoreRecord, error) {
	records, err := r.collect(ctx, func(rec types.ScoreRecord) bool {
		return rec.Score.CandidateID == candidateID
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].UpdatedAt.Equal(records[j].UpdatedAt) {
			return records[i].UpdatedAt.After(records[j].UpdatedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// SelectJobScores implements Repository.
func (r *MemoryRepository) SelectJobScores(ctx context.Context, jobID string, filter types.JobScoreFilter) ([]types.ScoreRecord, error) {
	records, err := r.collect(ctx, func(rec types.ScoreRecord) bool {
		if rec.Score.JobID != jobID {
			return false
		}
		return filter.MinScore == nil || rec.Score.OverallScore >= *filter.MinScore
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Score.OverallScore != b.Score.OverallScore {
			return a.Score.OverallScore > b.Score.OverallScore
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})
	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}

// Len returns the number of stored records.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *MemoryRepository) collect(ctx context.Context, keep func(types.ScoreRecord) bool) ([]types.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []types.ScoreRecord{}
	for _, rec := range r.records {
		if keep(rec) {
			records = append(records, cloneRecord(rec))
		}
	}
	return records, nil
}

// cloneRecord copies the slices of rec so callers cannot mutate stored state.
func cloneRecord(rec types.ScoreRecord) types.ScoreRecord {
	rec.Score.SkillMatches = slices.Clone(rec.Score.SkillMatches)
	rec.Score.MissingRequiredSkills = slices.Clone(rec.Score.MissingRequiredSkills)
	rec.Score.Recommendations = slices.Clone(rec.Score.Recommendations)
	return rec
}
