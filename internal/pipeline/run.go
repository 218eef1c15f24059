// Package pipeline provides the job orchestrator: it owns the job
// lifecycle, sequences fetch, extraction, inference, and scoring, and
// materializes the final profile. Status transitions move strictly
// forward and each one is committed to storage before the stage's work
// begins, so concurrent status queries always observe a real stage.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-profiler/internal/aggregate"
	"github.com/jonathan/skill-profiler/internal/db"
	"github.com/jonathan/skill-profiler/internal/extract"
	"github.com/jonathan/skill-profiler/internal/fetch"
	"github.com/jonathan/skill-profiler/internal/infer"
	"github.com/jonathan/skill-profiler/internal/source"
)

// maxFetchConcurrency bounds parallel URL fetches within the parsing
// stage. Parallelism here is invisible to the state machine.
const maxFetchConcurrency = 4

// profileName is the display name given to generated profiles.
const profileName = "Analyzed Profile"

// Store is the record-store surface the orchestrator needs. *db.DB
// satisfies it; tests substitute a recorder.
type Store interface {
	aggregate.Store
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status db.JobStatus) error
	SetJobError(ctx context.Context, id uuid.UUID, detail string) error
	CreateProfile(ctx context.Context, input db.ProfileInput) (*db.Profile, error)
	LinkJobProfile(ctx context.Context, jobID, profileID uuid.UUID) error
}

// Runner executes ingestion jobs. One Runner is shared across jobs; all
// per-job state lives on the stack of Run.
type Runner struct {
	store    Store
	fetcher  *source.Fetcher
	provider infer.Provider
	log      *zap.Logger
}

// NewRunner creates a Runner with its collaborators fixed at
// construction time.
func NewRunner(store Store, fetcher *source.Fetcher, provider infer.Provider, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		store:    store,
		fetcher:  fetcher,
		provider: provider,
		log:      log,
	}
}

// sourceDoc is one parsed source: its identifier, provenance, and text.
type sourceDoc struct {
	id         string
	sourceType fetch.SourceType
	sourceURL  string
	text       string
}

// Run executes the full ingestion pipeline for one job. Source and
// strategy failures degrade to partial data; persistence failures move
// the job to the error state and are returned so the execution layer's
// retry and alerting policy applies.
func (r *Runner) Run(ctx context.Context, jobID uuid.UUID, payload db.JobPayload) error {
	log := r.log.With(zap.String("job_id", jobID.String()))

	// parsing
	if err := r.advance(ctx, jobID, db.StatusParsing); err != nil {
		return r.fail(ctx, jobID, err)
	}
	docs := r.parseSources(ctx, payload)
	log.Info("parsed sources", zap.Int("count", len(docs)))

	// extracting
	if err := r.advance(ctx, jobID, db.StatusExtracting); err != nil {
		return r.fail(ctx, jobID, err)
	}
	var explicit, implicit []extract.Candidate
	for _, doc := range docs {
		explicit = append(explicit, stamp(extract.MatchKeywords(doc.text), doc)...)
		implicit = append(implicit, stamp(extract.InferPatterns(doc.text), doc)...)
	}

	// inferring
	if err := r.advance(ctx, jobID, db.StatusInferring); err != nil {
		return r.fail(ctx, jobID, err)
	}
	implicit = append(implicit, r.inferSkills(ctx, docs, log)...)

	// scoring
	if err := r.advance(ctx, jobID, db.StatusScoring); err != nil {
		return r.fail(ctx, jobID, err)
	}
	candidates := append(append([]extract.Candidate{}, explicit...), implicit...)

	manifest := make([]string, 0, len(docs))
	for _, doc := range docs {
		manifest = append(manifest, doc.id)
	}

	profile, err := r.store.CreateProfile(ctx, db.ProfileInput{
		Name:           profileName,
		Summary:        fmt.Sprintf("Profile with %d explicit and %d inferred skills", len(explicit), len(implicit)),
		SourceManifest: manifest,
		TopSkills:      aggregate.TopSkills(candidates),
	})
	if err != nil {
		return r.fail(ctx, jobID, fmt.Errorf("failed to create profile: %w", err))
	}

	aggregator := aggregate.New(r.store, r.log)
	if err := aggregator.Persist(ctx, profile.ID, candidates); err != nil {
		return r.fail(ctx, jobID, err)
	}

	if err := r.store.LinkJobProfile(ctx, jobID, profile.ID); err != nil {
		return r.fail(ctx, jobID, err)
	}

	// done
	if err := r.advance(ctx, jobID, db.StatusDone); err != nil {
		return r.fail(ctx, jobID, err)
	}

	log.Info("job complete",
		zap.String("profile_id", profile.ID.String()),
		zap.Int("skills", len(candidates)))
	return nil
}

// parseSources turns the submitted file and URLs into (source, text)
// pairs. URL fetches run in parallel but results keep submission order;
// every failure degrades to empty or placeholder text.
func (r *Runner) parseSources(ctx context.Context, payload db.JobPayload) []sourceDoc {
	var docs []sourceDoc

	if payload.FilePath != "" {
		text := r.fetcher.File(payload.FilePath)
		docs = append(docs, sourceDoc{
			id:         string(fetch.SourceCV),
			sourceType: fetch.SourceCV,
			text:       text,
		})
	}

	if len(payload.URLs) == 0 {
		return docs
	}

	urlDocs := make([]sourceDoc, len(payload.URLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFetchConcurrency)
	for i, url := range payload.URLs {
		g.Go(func() error {
			urlDocs[i] = sourceDoc{
				id:         url,
				sourceType: fetch.DetectSource(url),
				sourceURL:  url,
				text:       r.fetcher.URLBatch(gctx, []string{url}),
			}
			return nil
		})
	}
	// Fetch errors never surface; URLBatch narrates them in the text.
	_ = g.Wait()

	return append(docs, urlDocs...)
}

// inferSkills runs the LLM inferencer once over the concatenation of all
// parsed texts. Provider failures degrade to an empty list.
func (r *Runner) inferSkills(ctx context.Context, docs []sourceDoc, log *zap.Logger) []extract.Candidate {
	if r.provider == nil || len(docs) == 0 {
		return nil
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.text)
	}

	candidates, err := r.provider.Infer(ctx, strings.Join(texts, " "))
	if err != nil {
		log.Warn("skill inference degraded",
			zap.String("provider", r.provider.Name()),
			zap.Error(err))
		return nil
	}
	return candidates
}

// advance durably commits a forward status transition.
func (r *Runner) advance(ctx context.Context, jobID uuid.UUID, status db.JobStatus) error {
	if err := r.store.UpdateJobStatus(ctx, jobID, status); err != nil {
		return fmt.Errorf("failed to advance to %s: %w", status, err)
	}
	return nil
}

// fail records the terminal error state and re-raises the cause. The
// error row write is best-effort: if storage is gone there is nothing
// left to record to.
func (r *Runner) fail(ctx context.Context, jobID uuid.UUID, cause error) error {
	r.log.Error("job failed", zap.String("job_id", jobID.String()), zap.Error(cause))
	if err := r.store.SetJobError(ctx, jobID, cause.Error()); err != nil {
		r.log.Error("failed to record job error", zap.String("job_id", jobID.String()), zap.Error(err))
	}
	return cause
}

// stamp attaches a document's provenance to strategy candidates.
func stamp(candidates []extract.Candidate, doc sourceDoc) []extract.Candidate {
	for i := range candidates {
		candidates[i].SourceType = string(doc.sourceType)
		candidates[i].SourceURL = doc.sourceURL
	}
	return candidates
}
