package db

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// JobStatus is a stage in the ingestion state machine. Transitions only
// move forward through the declared order; error is terminal and
// reachable from any non-terminal state.
type JobStatus string

// Job status constants in forward order
const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusExtracting JobStatus = "extracting"
	StatusInferring  JobStatus = "inferring"
	StatusScoring    JobStatus = "scoring"
	StatusDone       JobStatus = "done"
	StatusError      JobStatus = "error"
)

// progressByStatus is the read-only projection consumed by API clients
// for polling. It is a contract with consumers and must stay stable.
var progressByStatus = map[JobStatus]int{
	StatusQueued:     0,
	StatusParsing:    25,
	StatusExtracting: 50,
	StatusInferring:  75,
	StatusScoring:    90,
	StatusDone:       100,
	StatusError:      -1,
}

// Progress returns the numeric progress indicator for a status.
// Unknown statuses report 0.
func (s JobStatus) Progress() int {
	if p, ok := progressByStatus[s]; ok {
		return p
	}
	return 0
}

// Terminal reports whether the status ends the job lifecycle.
func (s JobStatus) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// MaxErrorDetailLen bounds the failure description stored on an errored job.
const MaxErrorDetailLen = 500

// TruncateErrorDetail bounds a failure description, backing the cut off
// to a rune boundary so the stored tail stays valid UTF-8.
func TruncateErrorDetail(detail string) string {
	if len(detail) <= MaxErrorDetailLen {
		return detail
	}
	cut := MaxErrorDetailLen
	for cut > 0 && !utf8.RuneStart(detail[cut]) {
		cut--
	}
	return detail[:cut]
}

// JobPayload is the opaque submitted input kept on the job record.
type JobPayload struct {
	FilePath string         `json:"file_path,omitempty"`
	URLs     []string       `json:"urls,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

// Job is one ingestion request's lifecycle record. Owned exclusively by
// the orchestrator after creation.
type Job struct {
	ID        uuid.UUID  `json:"id"`
	Status    JobStatus  `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty"`
	Payload   JobPayload `json:"payload"`
	Error     *string    `json:"error,omitempty"`
}

// TopSkill is one entry of a profile's derived top-skills summary.
type TopSkill struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Profile is the aggregated output of one successful ingestion job.
// Immutable after creation except for deletion.
type Profile struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Summary        string     `json:"summary"`
	GeneratedAt    time.Time  `json:"generated_at"`
	SourceManifest []string   `json:"source_manifest"`
	TopSkills      []TopSkill `json:"top_skills"`
}

// Skill is a named competency shared across all profiles. The name is
// the de-duplication key for the entire system.
type Skill struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// Evidence links a profile to a skill with a weighted, dated observation.
type Evidence struct {
	ID               uuid.UUID `json:"id"`
	ProfileID        uuid.UUID `json:"profile_id"`
	SkillID          uuid.UUID `json:"skill_id"`
	SourceType       string    `json:"source_type"`
	Snippet          string    `json:"snippet"`
	SourceURL        *string   `json:"source_url,omitempty"`
	ConfidenceWeight float64   `json:"confidence_weight"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProfileSkill is the display projection of one skill under a profile:
// the skill row plus all its evidence and the mean confidence.
type ProfileSkill struct {
	Skill      Skill      `json:"skill"`
	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence"`
}

// User is an authenticated account that can submit ingestion jobs.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
