package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileInput holds the fields for creating a profile.
type ProfileInput struct {
	Name           string
	Summary        string
	SourceManifest []string
	TopSkills      []TopSkill
}

// CreateProfile persists a new profile and returns it.
func (db *DB) CreateProfile(ctx context.Context, input ProfileInput) (*Profile, error) {
	manifestJSON, err := json.Marshal(input.SourceManifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source manifest: %w", err)
	}
	topSkillsJSON, err := json.Marshal(input.TopSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal top skills: %w", err)
	}

	var p Profile
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profiles (name, summary, source_manifest, top_skills)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, summary, generated_at`,
		input.Name, input.Summary, manifestJSON, topSkillsJSON,
	).Scan(&p.ID, &p.Name, &p.Summary, &p.GeneratedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	p.SourceManifest = input.SourceManifest
	p.TopSkills = input.TopSkills
	return &p, nil
}

// GetProfile retrieves a profile by ID. Returns (nil, nil) when not found.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	var manifestJSON, topSkillsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, name, summary, generated_at, source_manifest, top_skills
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Summary, &p.GeneratedAt, &manifestJSON, &topSkillsJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if manifestJSON != nil {
		_ = json.Unmarshal(manifestJSON, &p.SourceManifest)
	}
	if topSkillsJSON != nil {
		_ = json.Unmarshal(topSkillsJSON, &p.TopSkills)
	}

	return &p, nil
}

// DeleteProfile removes a profile and its evidence rows (via cascade).
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

// ProfileSkills assembles the display projection for a profile: each
// referenced skill with its evidence rows and the arithmetic mean of
// their confidence weights, rounded to two decimals.
func (db *DB) ProfileSkills(ctx context.Context, profileID uuid.UUID) ([]ProfileSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.name, s.type,
		        e.id, e.profile_id, e.skill_id, e.source_type, e.snippet,
		        e.source_url, e.confidence_weight, e.created_at
		 FROM evidence e
		 JOIN skills s ON s.id = e.skill_id
		 WHERE e.profile_id = $1
		 ORDER BY s.name, e.created_at`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile skills: %w", err)
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID]*ProfileSkill)
	for rows.Next() {
		var skill Skill
		var ev Evidence
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Type,
			&ev.ID, &ev.ProfileID, &ev.SkillID, &ev.SourceType, &ev.Snippet,
			&ev.SourceURL, &ev.ConfidenceWeight, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile skill: %w", err)
		}

		ps, ok := grouped[skill.ID]
		if !ok {
			ps = &ProfileSkill{Skill: skill}
			grouped[skill.ID] = ps
		}
		ps.Evidence = append(ps.Evidence, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile skills: %w", err)
	}

	result := make([]ProfileSkill, 0, len(grouped))
	for _, ps := range grouped {
		ps.Confidence = MeanConfidence(ps.Evidence)
		result = append(result, *ps)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	return result, nil
}

// MeanConfidence is the display confidence for a skill under one
// profile: the arithmetic mean of its evidence weights, rounded to two
// decimals. Not the max, not weighted.
func MeanConfidence(evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}
	var sum float64
	for _, ev := range evidence {
		sum += ev.ConfidenceWeight
	}
	return math.Round(sum/float64(len(evidence))*100) / 100
}
