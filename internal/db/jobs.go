package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJob persists a new job in the queued state and returns it.
func (db *DB) CreateJob(ctx context.Context, payload JobPayload) (*Job, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	var job Job
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (status, payload)
		 VALUES ($1, $2)
		 RETURNING id, status, created_at, updated_at`,
		StatusQueued, payloadJSON,
	).Scan(&job.ID, &job.Status, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	job.Payload = payload
	return &job, nil
}

// GetJob retrieves a job by ID. Returns (nil, nil) when not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var job Job
	var payloadJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, status, created_at, updated_at, profile_id, payload, error
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Status, &job.CreatedAt, &job.UpdatedAt, &job.ProfileID, &payloadJSON, &job.Error)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if payloadJSON != nil {
		_ = json.Unmarshal(payloadJSON, &job.Payload)
	}

	return &job, nil
}

// UpdateJobStatus durably commits a status transition. The status column
// is the single source of truth for progress reporting, so every stage
// writes through here before doing its work.
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status JobStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// SetJobError moves a job to the terminal error state with a bounded
// failure description.
func (db *DB) SetJobError(ctx context.Context, id uuid.UUID, detail string) error {
	detail = TruncateErrorDetail(detail)
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error = $2, updated_at = NOW() WHERE id = $3`,
		StatusError, detail, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set job error: %w", err)
	}
	return nil
}

// LinkJobProfile attaches the materialized profile to its job.
func (db *DB) LinkJobProfile(ctx context.Context, jobID, profileID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET profile_id = $1, updated_at = NOW() WHERE id = $2`,
		profileID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to link profile: %w", err)
	}
	return nil
}
