// Package fetch - source.go provides source-type detection from URLs.
package fetch

import (
	"net/url"
	"strings"
)

// SourceType classifies where a piece of evidence text came from.
type SourceType string

const (
	// SourceCV is an uploaded résumé document
	SourceCV SourceType = "cv"
	// SourceGitHub is a GitHub repository or profile page
	SourceGitHub SourceType = "github"
	// SourceLinkedIn is a LinkedIn profile page
	SourceLinkedIn SourceType = "linkedin"
	// SourceBlog is any other web page
	SourceBlog SourceType = "blog"
	// SourceLLM marks candidates proposed by the LLM inferencer
	SourceLLM SourceType = "llm"
)

// DetectSource classifies a URL by its host.
func DetectSource(urlStr string) SourceType {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SourceBlog
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "github.com") {
		return SourceGitHub
	}
	if strings.Contains(host, "linkedin.com") {
		return SourceLinkedIn
	}
	return SourceBlog
}

// IsGitHubRepo reports whether the URL points at a repository root
// (owner/repo path, not a blob or raw file).
func IsGitHubRepo(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	if !strings.Contains(strings.ToLower(parsed.Host), "github.com") {
		return false
	}
	if strings.Contains(parsed.Path, "/blob/") {
		return false
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	return len(parts) >= 2 && parts[0] != "" && parts[1] != ""
}
