package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferPatterns_Leadership(t *testing.T) {
	candidates := InferPatterns("Managed a team of six engineers.")

	c := findCandidate(t, candidates, "Leadership")
	assert.Equal(t, "soft", c.Type)
	assert.InDelta(t, 0.7, c.Confidence, 1e-9)
	assert.Equal(t, "found leadership action verbs", c.Rationale)
}

func TestInferPatterns_Communication(t *testing.T) {
	c := findCandidate(t, InferPatterns("Presented quarterly results to stakeholders."), "Communication")
	assert.InDelta(t, 0.6, c.Confidence, 1e-9)
}

func TestInferPatterns_ProblemSolving(t *testing.T) {
	c := findCandidate(t, InferPatterns("Debugged a memory leak in production."), "Problem Solving")
	assert.InDelta(t, 0.65, c.Confidence, 1e-9)
}

func TestInferPatterns_ProjectManagement(t *testing.T) {
	c := findCandidate(t, InferPatterns("Hit every milestone ahead of the deadline."), "Project Management")
	assert.InDelta(t, 0.6, c.Confidence, 1e-9)
}

func TestInferPatterns_FiresOncePerPattern(t *testing.T) {
	text := "Led the team, managed the roadmap, mentored juniors, supervised releases."
	candidates := InferPatterns(text)

	count := 0
	for _, c := range candidates {
		if c.Name == "Leadership" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestInferPatterns_WordBoundary(t *testing.T) {
	// "mismanaged" must not trigger the leadership verbs
	candidates := InferPatterns("The rollout was mismanaged from the start.")
	for _, c := range candidates {
		assert.NotEqual(t, "Leadership", c.Name)
	}
}

func TestInferPatterns_CaseInsensitive(t *testing.T) {
	candidates := InferPatterns("LED and COORDINATED cross-team initiatives.")
	require.NotEmpty(t, candidates)
	assert.Equal(t, "Leadership", candidates[0].Name)
}

func TestInferPatterns_EmptyText(t *testing.T) {
	assert.Nil(t, InferPatterns(""))
}

func TestInferPatterns_MultiplePatterns(t *testing.T) {
	text := "Led the project and solved scaling issues, then presented the results."
	candidates := InferPatterns(text)

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Leadership")
	assert.Contains(t, names, "Communication")
	assert.Contains(t, names, "Problem Solving")
	assert.Contains(t, names, "Project Management")
}
