package scores

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-intake/internal/types"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testStart = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *testclock.Clock, *observer.ObservedLogs) {
	t.Helper()
	clk := testclock.NewClock(testStart)
	core, logs := observer.New(zap.InfoLevel)
	return NewService(NewMemoryRepository(), clk, zap.New(core)), clk, logs
}

func sampleScore(candidateID, jobID string, overall float64) types.CandidateScore {
	return types.CandidateScore{
		CandidateID:  candidateID,
		JobID:        jobID,
		OverallScore: overall,
		SkillMatches: []types.SkillMatch{
			{Skill: "React", Found: true, Confidence: 1, Required: true},
			{Skill: "Node.js", Found: false, Required: true},
		},
		MissingRequiredSkills: []string{"Node.js"},
		Recommendations:       []string{"👍 Good match", "❌ Missing required skills: Node.js"},
	}
}

func TestSaveScore_RoundTrip(t *testing.T) {
	svc, _, logs := newTestService(t)
	ctx := context.Background()

	saved, err := svc.SaveScore(ctx, sampleScore("cand-1", "job-1", 72.5), types.ScoreMetadata{CorrelationID: "corr-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, testStart, saved.CreatedAt)

	rec, found, err := svc.GetScore(ctx, "cand-1", "job-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 72.5, rec.Score.OverallScore)
	assert.Len(t, rec.Score.SkillMatches, 2)
	assert.Len(t, rec.Score.Recommendations, 2)
	assert.Equal(t, "corr-1", rec.Metadata.CorrelationID)

	entries := logs.FilterMessage("candidate score saved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cand-1", entries[0].ContextMap()["candidate_id"])
}

func TestSaveScore_RequiresIDs(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SaveScore(context.Background(), sampleScore("", "job-1", 50), types.ScoreMetadata{})
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.SaveScore(context.Background(), sampleScore("cand-1", " ", 50), types.ScoreMetadata{})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestSaveScore_UpsertLastWriterWins(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.SaveScore(ctx, sampleScore("cand-1", "job-1", 40), types.ScoreMetadata{})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	second, err := svc.SaveScore(ctx, sampleScore("cand-1", "job-1", 80), types.ScoreMetadata{AutoRejected: false})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, testStart, second.CreatedAt)
	assert.Equal(t, testStart.Add(time.Hour), second.UpdatedAt)

	rec, found, err := svc.GetScore(ctx, "cand-1", "job-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 80.0, rec.Score.OverallScore)
}

func TestSaveScore_ConcurrentSamePair(t *testing.T) {
	svc, _, _ := newTestService(t)
	repo := svc.repo.(*MemoryRepository)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SaveScore(ctx, sampleScore("cand-1", "job-1", float64(i)), types.ScoreMetadata{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Len())
}

func TestGetScore_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	rec, found, err := svc.GetScore(context.Background(), "nobody", "job-1")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestGetCandidateScores_NewestFirst(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()

	for _, job := range []string{"job-a", "job-b", "job-c"} {
		_, err := svc.SaveScore(ctx, sampleScore("cand-1", job, 50), types.ScoreMetadata{})
		require.NoError(t, err)
		clk.Advance(time.Minute)
	}
	_, err := svc.SaveScore(ctx, sampleScore("cand-2", "job-a", 50), types.ScoreMetadata{})
	require.NoError(t, err)

	records, err := svc.GetCandidateScores(ctx, "cand-1")
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "job-c", records[0].Score.JobID)
	assert.Equal(t, "job-b", records[1].Score.JobID)
	assert.Equal(t, "job-a", records[2].Score.JobID)
}

func TestGetJobScores_FilterAndOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i, overall := range []float64{55, 91.5, 30, 70, 91.5} {
		_, err := svc.SaveScore(ctx, sampleScore(fmt.Sprintf("cand-%d", i), "job-1", overall), types.ScoreMetadata{})
		require.NoError(t, err)
	}
	_, err := svc.SaveScore(ctx, sampleScore("cand-x", "job-2", 99), types.ScoreMetadata{})
	require.NoError(t, err)

	minScore := 55.0
	records, err := svc.GetJobScores(ctx, "job-1", types.JobScoreFilter{MinScore: &minScore})
	require.NoError(t, err)

	var got []float64
	for _, rec := range records {
		assert.GreaterOrEqual(t, rec.Score.OverallScore, minScore)
		got = append(got, rec.Score.OverallScore)
	}
	assert.Equal(t, []float64{91.5, 91.5, 70, 55}, got)

	all, err := svc.GetJobScores(ctx, "job-1", types.JobScoreFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, 30.0, all[len(all)-1].Score.OverallScore)

	limited, err := svc.GetJobScores(ctx, "job-1", types.JobScoreFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = svc.GetJobScores(ctx, "job-1", types.JobScoreFilter{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveScore(ctx, sampleScore("cand-1", "job-1", 60), types.ScoreMetadata{})
	require.NoError(t, err)

	rec, _, err := svc.GetScore(ctx, "cand-1", "job-1")
	require.NoError(t, err)
	rec.Score.Recommendations[0] = "mutated"

	again, _, err := svc.GetScore(ctx, "cand-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, "👍 Good match", again.Score.Recommendations[0])
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SaveScore(ctx, sampleScore("cand-1", "job-1", 60), types.ScoreMetadata{})
	assert.True(t, errors.Is(err, context.Canceled))
}

type failingRepo struct{ MemoryRepository }

func (failingRepo) SelectCandidateScore(context.Context, string, string) (*types.ScoreRecord, error) {
	return nil, errors.New("connection reset")
}

func TestGetScore_RepositoryError(t *testing.T) {
	svc := NewService(&failingRepo{}, nil, nil)

	_, found, err := svc.GetScore(context.Background(), "cand-1", "job-1")

	assert.ErrorContains(t, err, "connection reset")
	assert.False(t, found)
}
