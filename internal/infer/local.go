package infer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/skill-profiler/internal/extract"
	"github.com/jonathan/skill-profiler/internal/fetch"
	"github.com/jonathan/skill-profiler/internal/ontology"
)

// localConfidence is the flat confidence assigned to rule-based inferences.
const localConfidence = 0.6

// localPattern maps a skill to the keywords that signal it. This is kept
// as its own implementation rather than reusing the pattern inferencer so
// the provider works standalone.
type localPattern struct {
	skill    string
	keywords []string
}

var localPatterns = []localPattern{
	{"Leadership", []string{"led", "managed", "coordinated", "directed"}},
	{"Communication", []string{"presented", "explained", "collaborated", "discussed"}},
	{"Problem Solving", []string{"solved", "optimized", "improved", "debugged"}},
	{"Mentoring", []string{"mentored", "trained", "taught", "guided"}},
}

// LocalProvider performs rule-based inference with no external dependencies.
type LocalProvider struct{}

// NewLocalProvider creates the zero-dependency fallback provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Name identifies the provider in logs.
func (p *LocalProvider) Name() string { return "local" }

// Infer scans the text for keyword clusters and emits one candidate per
// matched cluster. It never fails.
func (p *LocalProvider) Infer(_ context.Context, text string) ([]extract.Candidate, error) {
	if text == "" {
		return nil, nil
	}

	lower := strings.ToLower(text)

	var candidates []extract.Candidate
	for _, pattern := range localPatterns {
		if !containsAny(lower, pattern.keywords) {
			continue
		}
		candidates = append(candidates, extract.Candidate{
			Name:       pattern.skill,
			Type:       string(ontology.TypeOf(pattern.skill)),
			Confidence: localConfidence,
			Rationale:  fmt.Sprintf("found keywords: %s", strings.Join(pattern.keywords, ", ")),
			SourceType: string(fetch.SourceLLM),
		})
	}
	return candidates, nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
