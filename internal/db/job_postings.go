package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-intake/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

// SelectJobPosting retrieves a job posting by ID. It returns nil, nil when absent.
func (db *DB) SelectJobPosting(ctx context.Context, id string) (*types.JobPosting, error) {
	var p types.JobPosting
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, content FROM job_postings WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return &p, nil
}

// UpsertJobPosting creates or replaces a job posting.
func (db *DB) UpsertJobPosting(ctx context.Context, p types.JobPosting) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_postings (id, title, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content, updated_at = NOW()`,
		p.ID, p.Title, string(p.Content),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job posting %s: %w", p.ID, err)
	}
	return nil
}
