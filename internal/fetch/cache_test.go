package fetch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextCache_PutGet(t *testing.T) {
	cache := NewTextCache(4)

	_, ok := cache.Get("https://example.com")
	assert.False(t, ok)

	cache.Put("https://example.com", "page text")
	text, ok := cache.Get("https://example.com")
	assert.True(t, ok)
	assert.Equal(t, "page text", text)
	assert.Equal(t, 1, cache.Len())
}

func TestTextCache_BoundedSize(t *testing.T) {
	cache := NewTextCache(3)
	for i := 0; i < 10; i++ {
		cache.Put(fmt.Sprintf("https://example.com/%d", i), "text")
	}
	assert.LessOrEqual(t, cache.Len(), 3)
}

func TestTextCache_ZeroSizeDisablesCaching(t *testing.T) {
	cache := NewTextCache(0)
	cache.Put("https://example.com", "text")
	assert.Equal(t, 0, cache.Len())
}

func TestTextCache_NilSafe(t *testing.T) {
	var cache *TextCache

	cache.Put("https://example.com", "text")
	_, ok := cache.Get("https://example.com")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
