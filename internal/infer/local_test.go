package infer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_Infer(t *testing.T) {
	p := NewLocalProvider()

	candidates, err := p.Infer(context.Background(), "Led the platform team and mentored two juniors.")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	names := []string{candidates[0].Name, candidates[1].Name}
	assert.Contains(t, names, "Leadership")
	assert.Contains(t, names, "Mentoring")

	for _, c := range candidates {
		assert.InDelta(t, 0.6, c.Confidence, 1e-9)
		assert.Equal(t, "llm", c.SourceType)
		assert.NotEmpty(t, c.Rationale)
	}
}

func TestLocalProvider_TypesComeFromCatalog(t *testing.T) {
	p := NewLocalProvider()

	candidates, err := p.Infer(context.Background(), "Solved a gnarly replication bug.")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Problem Solving", candidates[0].Name)
	assert.Equal(t, "soft", candidates[0].Type)
}

func TestLocalProvider_EmptyText(t *testing.T) {
	p := NewLocalProvider()

	candidates, err := p.Infer(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, candidates)
}

func TestLocalProvider_NoMatches(t *testing.T) {
	p := NewLocalProvider()

	candidates, err := p.Infer(context.Background(), "lorem ipsum dolor sit amet")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestLocalProvider_Name(t *testing.T) {
	assert.Equal(t, "local", NewLocalProvider().Name())
}

func TestNewProvider_FallsBackToLocalWithoutKey(t *testing.T) {
	p := NewProvider(context.Background(), Config{}, nil)
	assert.Equal(t, "local", p.Name())
}
