package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-intake/internal/types"
)

// -----------------------------------------------------------------------------
// Candidate Score Methods
// -----------------------------------------------------------------------------

const scoreColumns = `id, score, metadata, created_at, updated_at`

// UpsertCandidateScore stores rec keyed by (candidate, job). On conflict the
// score and metadata are replaced while the ID and creation time are kept.
func (db *DB) UpsertCandidateScore(ctx context.Context, rec *types.ScoreRecord) (*types.ScoreRecord, error) {
	scoreJSON, err := json.Marshal(rec.Score)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score: %w", err)
	}
	metaJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score metadata: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidate_scores
		        (id, candidate_id, job_id, overall_score, score, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
		        overall_score = EXCLUDED.overall_score,
		        score = EXCLUDED.score,
		        metadata = EXCLUDED.metadata,
		        updated_at = EXCLUDED.updated_at
		 RETURNING `+scoreColumns,
		rec.ID, rec.Score.CandidateID, rec.Score.JobID, rec.Score.OverallScore,
		scoreJSON, metaJSON, rec.CreatedAt, rec.UpdatedAt,
	)

	saved, err := scanScoreRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate score: %w", err)
	}
	return saved, nil
}

// SelectCandidateScore retrieves the score for one (candidate, job) pair.
// It returns nil, nil when absent.
func (db *DB) SelectCandidateScore(ctx context.Context, candidateID, jobID string) (*types.ScoreRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+scoreColumns+` FROM candidate_scores WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	)

	rec, err := scanScoreRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate score: %w", err)
	}
	return rec, nil
}

// SelectCandidateScores lists a candidate's scores, most recently updated first.
func (db *DB) SelectCandidateScores(ctx context.Context, candidateID string) ([]types.ScoreRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+scoreColumns+` FROM candidate_scores
		 WHERE candidate_id = $1
		 ORDER BY updated_at DESC, id`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate scores: %w", err)
	}
	return collectScoreRecords(rows)
}

// SelectJobScores lists a job's scores by descending overall score. A nil
// MinScore and a zero Limit leave the listing unfiltered.
func (db *DB) SelectJobScores(ctx context.Context, jobID string, filter types.JobScoreFilter) ([]types.ScoreRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+scoreColumns+` FROM candidate_scores
		 WHERE job_id = $1 AND ($2::double precision IS NULL OR overall_score >= $2)
		 ORDER BY overall_score DESC, updated_at DESC
		 LIMIT NULLIF($3, 0)`,
		jobID, filter.MinScore, filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job scores: %w", err)
	}
	return collectScoreRecords(rows)
}

func collectScoreRecords(rows pgx.Rows) ([]types.ScoreRecord, error) {
	defer rows.Close()

	records := []types.ScoreRecord{}
	for rows.Next() {
		rec, err := scanScoreRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate score: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidate scores: %w", err)
	}
	return records, nil
}

func scanScoreRecord(row pgx.Row) (*types.ScoreRecord, error) {
	var rec types.ScoreRecord
	var scoreJSON, metaJSON []byte

	if err := row.Scan(&rec.ID, &scoreJSON, &metaJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeScorePayload(scoreJSON, metaJSON, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// decodeScorePayload fills rec from the JSONB score and metadata columns.
func decodeScorePayload(scoreJSON, metaJSON []byte, rec *types.ScoreRecord) error {
	if err := json.Unmarshal(scoreJSON, &rec.Score); err != nil {
		return fmt.Errorf("invalid score payload: %w", err)
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &rec.Metadata); err != nil {
			return fmt.Errorf("invalid score metadata: %w", err)
		}
	}
	return nil
}
