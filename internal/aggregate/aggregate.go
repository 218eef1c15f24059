// Package aggregate resolves the unioned candidate list from all
// extraction strategies into persisted skill and evidence rows.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skill-profiler/internal/db"
	"github.com/jonathan/skill-profiler/internal/extract"
)

// TopSkillCount caps the derived top-skills summary on a profile.
const TopSkillCount = 5

// Schema-safe length bounds applied before storage. Defensive
// truncation, not semantic validation.
const (
	maxTypeLen       = 8
	maxSourceTypeLen = 20
	maxSnippetLen    = 500
)

// Store is the record-store surface the aggregator needs.
type Store interface {
	FindOrCreateSkill(ctx context.Context, name, skillType string) (*db.Skill, error)
	CreateEvidence(ctx context.Context, input db.EvidenceInput) (*db.Evidence, error)
}

// Aggregator persists candidates as skill and evidence rows.
type Aggregator struct {
	store Store
	log   *zap.Logger
}

// New creates an Aggregator.
func New(store Store, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{store: store, log: log}
}

// Persist resolves each candidate to a skill row (find-or-create by
// exact name) and creates one evidence row per candidate. Candidates are
// deliberately not deduplicated here: multiple strategies proposing the
// same skill for the same document produce multiple evidence rows, each
// with its own confidence; deduplication happens at display time via
// the mean-confidence rule.
func (a *Aggregator) Persist(ctx context.Context, profileID uuid.UUID, candidates []extract.Candidate) error {
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}

		skill, err := a.store.FindOrCreateSkill(ctx, c.Name, truncate(c.Type, maxTypeLen))
		if err != nil {
			return fmt.Errorf("failed to resolve skill %q: %w", c.Name, err)
		}

		var sourceURL *string
		if c.SourceURL != "" {
			url := c.SourceURL
			sourceURL = &url
		}

		_, err = a.store.CreateEvidence(ctx, db.EvidenceInput{
			ProfileID:        profileID,
			SkillID:          skill.ID,
			SourceType:       truncate(c.SourceType, maxSourceTypeLen),
			Snippet:          truncate(c.Snippet, maxSnippetLen),
			SourceURL:        sourceURL,
			ConfidenceWeight: c.Confidence,
		})
		if err != nil {
			return fmt.Errorf("failed to record evidence for %q: %w", c.Name, err)
		}
	}

	a.log.Info("persisted evidence", zap.Int("candidates", len(candidates)))
	return nil
}

// TopSkills sorts candidates by confidence descending and returns the
// top entries as the profile's summary, capped at TopSkillCount.
func TopSkills(candidates []extract.Candidate) []db.TopSkill {
	sorted := make([]extract.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	n := len(sorted)
	if n > TopSkillCount {
		n = TopSkillCount
	}

	top := make([]db.TopSkill, 0, n)
	for _, c := range sorted[:n] {
		top = append(top, db.TopSkill{Name: c.Name, Confidence: c.Confidence})
	}
	return top
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
