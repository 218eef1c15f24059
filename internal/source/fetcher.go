// Package source turns file paths and URLs into best-effort plain text.
// Nothing in this package raises past the pipeline boundary: every
// network, parse, or I/O failure degrades to empty or placeholder text
// and is recorded as a structured log event so it stays diagnosable.
package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/skill-profiler/internal/fetch"
)

// Fetcher resolves source references to plain text.
type Fetcher struct {
	opts       *fetch.Options
	cache      *fetch.TextCache
	useBrowser bool
	log        *zap.Logger
}

// NewFetcher creates a Fetcher. The cache may be nil to disable caching;
// useBrowser enables headless-browser fallback for JS-heavy pages.
func NewFetcher(opts *fetch.Options, cache *fetch.TextCache, useBrowser bool, log *zap.Logger) *Fetcher {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		opts:       opts,
		cache:      cache,
		useBrowser: useBrowser,
		log:        log,
	}
}

// File extracts plain text from a local document. Missing files and
// unsupported or unparsable formats yield empty text.
func (f *Fetcher) File(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		f.log.Warn("source file unavailable", zap.String("path", path), zap.Error(err))
		return ""
	}

	text, err := DocumentText(path)
	if err != nil {
		f.log.Warn("document extraction failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return text
}

// URLBatch fetches each URL independently and concatenates the results
// with a per-source delimiter header so provenance survives into the
// combined text blob. A failed fetch contributes a fragment narrating
// the failure instead of aborting the batch.
func (f *Fetcher) URLBatch(ctx context.Context, urls []string) string {
	var sb strings.Builder
	for _, url := range urls {
		text, err := f.urlText(ctx, url)
		if err != nil {
			f.log.Warn("url fetch failed", zap.String("url", url), zap.Error(err))
			sb.WriteString(fmt.Sprintf("\n--- Error fetching %s: %s ---\n", url, err))
			continue
		}
		sb.WriteString(fmt.Sprintf("\n--- Content from %s ---\n%s\n", url, text))
	}
	return sb.String()
}

// urlText fetches one URL and reduces it to plain text.
func (f *Fetcher) urlText(ctx context.Context, url string) (string, error) {
	if text, ok := f.cache.Get(url); ok {
		return text, nil
	}

	// GitHub repositories get README content instead of the HTML shell.
	if fetch.IsGitHubRepo(url) {
		text := fetch.GitHubReadme(ctx, url, f.opts)
		f.cache.Put(url, text)
		return text, nil
	}

	result, err := fetch.URL(ctx, url, f.opts)
	if err != nil {
		return "", err
	}

	text, err := fetch.StripHTML(result.Body)
	if err != nil {
		return "", err
	}

	if f.useBrowser && fetch.ShouldUseBrowser(text) {
		if html, berr := fetch.WithBrowser(ctx, url); berr == nil {
			if rendered, serr := fetch.StripHTML(html); serr == nil && len(rendered) > len(text) {
				text = rendered
			}
		} else {
			f.log.Debug("browser fallback failed", zap.String("url", url), zap.Error(berr))
		}
	}

	f.cache.Put(url, text)
	return text, nil
}
