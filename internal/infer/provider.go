// Package infer provides LLM-backed skill inference. A Provider takes the
// combined text of all parsed documents and proposes skills the keyword
// and pattern strategies miss. Two implementations exist: a cloud-backed
// Gemini provider and a local rule-based provider that works with zero
// external dependencies. Selection happens once, at construction time.
package infer

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/skill-profiler/internal/extract"
)

// Provider infers candidate skills from combined document text.
type Provider interface {
	// Infer returns candidate skill records in the same shape as the
	// other extraction strategies. Implementations may fail; callers
	// treat any error as an empty result.
	Infer(ctx context.Context, text string) ([]extract.Candidate, error)
	// Name identifies the provider in logs.
	Name() string
}

// Config selects and configures the provider.
type Config struct {
	// APIKey enables the cloud provider when set.
	APIKey string
	// Model overrides the default cloud model name.
	Model string
}

// NewProvider selects the cloud provider when a credential is configured,
// falling back to the local rule-based provider otherwise.
func NewProvider(ctx context.Context, cfg Config, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.APIKey != "" {
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err == nil {
			return p
		}
		log.Warn("cloud provider unavailable, using local inference", zap.Error(err))
	}
	return NewLocalProvider()
}
