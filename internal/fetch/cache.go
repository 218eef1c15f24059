// Package fetch - cache.go provides a bounded in-process cache of fetched
// source text. The cache is an explicitly scoped object handed to the
// source fetcher at construction time, never package-level state, so the
// pipeline stays re-entrant across concurrent jobs.
package fetch

import "sync"

// TextCache caches stripped source text keyed by URL. When full, an
// arbitrary entry is evicted; entries are small (text is capped at
// MaxTextLength) so precision of the eviction order does not matter.
type TextCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]string
}

// NewTextCache creates a cache bounded to maxSize entries.
// A maxSize of zero disables caching.
func NewTextCache(maxSize int) *TextCache {
	return &TextCache{
		maxSize: maxSize,
		entries: make(map[string]string),
	}
}

// Get returns the cached text for a URL, if present.
func (c *TextCache) Get(url string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.entries[url]
	return text, ok
}

// Put stores text for a URL, evicting one entry if the cache is full.
func (c *TextCache) Put(url, text string) {
	if c == nil || c.maxSize == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxSize {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[url] = text
}

// Len returns the number of cached entries.
func (c *TextCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
