// Package worker provides the task-execution collaborator: a bounded
// pool that runs each submitted job's pipeline exactly once. Submission
// is fire-and-forget; the pipeline reports progress only through the job
// row, never via a return value or callback.
package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/skill-profiler/internal/db"
	"github.com/jonathan/skill-profiler/internal/pipeline"
)

// DefaultPoolSize is the default number of concurrently executing jobs.
const DefaultPoolSize = 4

// Pool dispatches ingestion jobs to a bounded set of workers.
type Pool struct {
	runner *pipeline.Runner
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	log    *zap.Logger
}

// NewPool creates a pool executing at most size jobs concurrently.
func NewPool(runner *pipeline.Runner, size int64, log *zap.Logger) *Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{
		runner: runner,
		sem:    semaphore.NewWeighted(size),
		log:    log,
	}
}

// Submit schedules a job for asynchronous execution and returns
// immediately. The pipeline's own error handling records failures on
// the job row; errors surfacing here are logged for operational
// monitoring only.
func (p *Pool) Submit(jobID uuid.UUID, payload db.JobPayload) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx := context.Background()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			p.log.Error("failed to acquire worker slot", zap.String("job_id", jobID.String()), zap.Error(err))
			return
		}
		defer p.sem.Release(1)

		if err := p.runner.Run(ctx, jobID, payload); err != nil {
			p.log.Error("pipeline run failed", zap.String("job_id", jobID.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until all submitted jobs have finished. Used on shutdown.
func (p *Pool) Wait() {
	p.wg.Wait()
}
