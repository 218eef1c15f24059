package db

import (
	"context"
	"fmt"
)

// FindOrCreateSkill resolves a skill name to its globally shared row,
// creating it if absent. The insert-or-fetch-on-conflict form makes the
// operation race-safe: two jobs proposing the same name concurrently
// resolve to one row. Names are case-sensitive canonical forms.
func (db *DB) FindOrCreateSkill(ctx context.Context, name, skillType string) (*Skill, error) {
	var skill Skill
	err := db.pool.QueryRow(ctx,
		`INSERT INTO skills (name, type)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, type`,
		name, skillType,
	).Scan(&skill.ID, &skill.Name, &skill.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create skill %q: %w", name, err)
	}
	return &skill, nil
}
