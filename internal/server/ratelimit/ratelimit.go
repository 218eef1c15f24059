// Package ratelimit provides per-client request throttling using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Rule bounds requests for one route prefix. Limit tokens refill over Window;
// the bucket starts full, so Limit is also the burst capacity.
type Rule struct {
	Prefix string
	Limit  int
	Window time.Duration
}

// DefaultRules throttles job submission and auth endpoints harder than reads.
// Ingestion jobs are expensive (document parsing plus LLM calls), so the
// submit rate is kept low.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/ingest", Limit: 10, Window: time.Minute},
		{Prefix: "/auth/", Limit: 20, Window: time.Minute},
	}
}

// DefaultLimit applies to routes without a matching rule.
const (
	DefaultLimit  = 300
	DefaultWindow = time.Minute

	bucketTTL = time.Hour
)

type bucket struct {
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastSeen   time.Time
}

func (b *bucket) take(now time.Time) bool {
	elapsed := now.Sub(b.lastSeen).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastSeen = now
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Limiter throttles requests per client and route rule. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	rules   []Rule
	buckets map[string]*bucket
	stop    chan struct{}
}

// NewLimiter creates a limiter and starts a background sweep that drops
// buckets idle for over an hour.
func NewLimiter(rules []Rule) *Limiter {
	l := &Limiter{
		rules:   rules,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether a request from clientID to path may proceed, and
// the retry delay when it may not.
func (l *Limiter) Allow(clientID, path string) (bool, time.Duration) {
	limit, window := DefaultLimit, DefaultWindow
	key := clientID
	for _, r := range l.rules {
		if len(path) >= len(r.Prefix) && path[:len(r.Prefix)] == r.Prefix {
			limit, window = r.Limit, r.Window
			key = clientID + ":" + r.Prefix
			break
		}
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			tokens:     float64(limit),
			capacity:   float64(limit),
			refillRate: float64(limit) / window.Seconds(),
			lastSeen:   now,
		}
		l.buckets[key] = b
	}

	if b.take(now) {
		return true, 0
	}
	retry := time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	return false, retry
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-bucketTTL)
			l.mu.Lock()
			for key, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Stop terminates the background sweep goroutine.
func (l *Limiter) Stop() {
	close(l.stop)
}
