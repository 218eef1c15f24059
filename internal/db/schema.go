package db

import (
	"context"
	"fmt"
)

// schema is applied idempotently at startup. The unique constraint on
// skills.name backs the race-safe find-or-create; evidence cascades with
// its profile.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name            TEXT NOT NULL DEFAULT '',
	summary         TEXT NOT NULL DEFAULT '',
	generated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	source_manifest JSONB,
	top_skills      JSONB
);

CREATE TABLE IF NOT EXISTS jobs (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	profile_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
	payload    JSONB,
	error      TEXT
);

CREATE TABLE IF NOT EXISTS skills (
	id   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL UNIQUE,
	type VARCHAR(8) NOT NULL
);

CREATE TABLE IF NOT EXISTS evidence (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	profile_id        UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	skill_id          UUID NOT NULL REFERENCES skills(id),
	source_type       VARCHAR(20) NOT NULL,
	snippet           TEXT NOT NULL DEFAULT '',
	source_url        TEXT,
	confidence_weight DOUBLE PRECISION NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_evidence_profile ON evidence(profile_id);
CREATE INDEX IF NOT EXISTS idx_evidence_skill ON evidence(skill_id);
`

// Migrate applies the schema.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
