package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EvidenceInput holds the fields for creating an evidence row.
type EvidenceInput struct {
	ProfileID        uuid.UUID
	SkillID          uuid.UUID
	SourceType       string
	Snippet          string
	SourceURL        *string
	ConfidenceWeight float64
}

// CreateEvidence persists one evidence row. Evidence is append-only:
// rows are never mutated and are deleted only with their profile.
func (db *DB) CreateEvidence(ctx context.Context, input EvidenceInput) (*Evidence, error) {
	var ev Evidence
	err := db.pool.QueryRow(ctx,
		`INSERT INTO evidence (profile_id, skill_id, source_type, snippet, source_url, confidence_weight)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, profile_id, skill_id, source_type, snippet, source_url, confidence_weight, created_at`,
		input.ProfileID, input.SkillID, input.SourceType, input.Snippet, input.SourceURL, input.ConfidenceWeight,
	).Scan(&ev.ID, &ev.ProfileID, &ev.SkillID, &ev.SourceType, &ev.Snippet,
		&ev.SourceURL, &ev.ConfidenceWeight, &ev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create evidence: %w", err)
	}
	return &ev, nil
}
