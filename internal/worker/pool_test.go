package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skill-profiler/internal/db"
	"github.com/jonathan/skill-profiler/internal/fetch"
	"github.com/jonathan/skill-profiler/internal/infer"
	"github.com/jonathan/skill-profiler/internal/pipeline"
	"github.com/jonathan/skill-profiler/internal/source"
)

// countingStore tracks how many jobs reached the done state.
type countingStore struct {
	mu   sync.Mutex
	done map[uuid.UUID]bool
}

func newCountingStore() *countingStore {
	return &countingStore{done: make(map[uuid.UUID]bool)}
}

func (s *countingStore) UpdateJobStatus(_ context.Context, id uuid.UUID, status db.JobStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == db.StatusDone {
		s.done[id] = true
	}
	return nil
}

func (s *countingStore) SetJobError(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (s *countingStore) FindOrCreateSkill(_ context.Context, name, skillType string) (*db.Skill, error) {
	return &db.Skill{ID: uuid.New(), Name: name, Type: skillType}, nil
}

func (s *countingStore) CreateEvidence(_ context.Context, input db.EvidenceInput) (*db.Evidence, error) {
	return &db.Evidence{ID: uuid.New()}, nil
}

func (s *countingStore) CreateProfile(_ context.Context, input db.ProfileInput) (*db.Profile, error) {
	return &db.Profile{ID: uuid.New(), Name: input.Name}, nil
}

func (s *countingStore) LinkJobProfile(_ context.Context, _, _ uuid.UUID) error { return nil }

func newPoolUnderTest(store pipeline.Store, size int64) *Pool {
	fetcher := source.NewFetcher(fetch.DefaultOptions(), nil, false, nil)
	runner := pipeline.NewRunner(store, fetcher, infer.NewLocalProvider(), nil)
	return NewPool(runner, size, nil)
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	store := newCountingStore()
	pool := newPoolUnderTest(store, 2)

	ids := make([]uuid.UUID, 5)
	for i := range ids {
		ids[i] = uuid.New()
		pool.Submit(ids[i], db.JobPayload{})
	}
	pool.Wait()

	for _, id := range ids {
		assert.True(t, store.done[id], "job %s did not complete", id)
	}
}

func TestPool_ZeroSizeFallsBackToDefault(t *testing.T) {
	store := newCountingStore()
	pool := newPoolUnderTest(store, 0)

	id := uuid.New()
	pool.Submit(id, db.JobPayload{})
	pool.Wait()

	assert.True(t, store.done[id])
}
