// Package fetch - github.go provides README retrieval for GitHub repositories.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultGitHubRawBase = "https://raw.githubusercontent.com"

// GitHubReadme fetches the README of a repository, trying the main branch
// first and falling back to master. If neither branch yields a README the
// returned text is a bare repository reference so the pipeline still has
// something to attribute evidence to.
func GitHubReadme(ctx context.Context, repoURL string, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}

	owner, repo, ok := splitRepoPath(repoURL)
	if !ok {
		return fmt.Sprintf("GitHub Repository: %s", repoURL)
	}

	rawBase := opts.GitHubRawBase
	if rawBase == "" {
		rawBase = defaultGitHubRawBase
	}

	for _, branch := range []string{"main", "master"} {
		readmeURL := fmt.Sprintf("%s/%s/%s/%s/README.md", rawBase, owner, repo, branch)
		result, err := URL(ctx, readmeURL, opts)
		if err != nil {
			continue
		}
		if result.StatusCode == http.StatusOK {
			return fmt.Sprintf("Repository: %s\n\nREADME Content:\n%s", repoURL, result.Body)
		}
	}

	return fmt.Sprintf("GitHub Repository: %s", repoURL)
}

// splitRepoPath extracts owner and repo from a GitHub repository URL.
func splitRepoPath(repoURL string) (owner, repo string, ok bool) {
	parsed, err := url.Parse(repoURL)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
