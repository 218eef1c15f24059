package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubReadme_MainBranch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/alice/project/main/README.md" {
			_, _ = w.Write([]byte("# Project\nA Go service."))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.GitHubRawBase = srv.URL

	text := GitHubReadme(context.Background(), "https://github.com/alice/project", opts)
	assert.Contains(t, text, "Repository: https://github.com/alice/project")
	assert.Contains(t, text, "README Content:")
	assert.Contains(t, text, "A Go service.")
}

func TestGitHubReadme_FallsBackToMaster(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/alice/legacy/master/README.md" {
			_, _ = w.Write([]byte("legacy readme"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.GitHubRawBase = srv.URL

	text := GitHubReadme(context.Background(), "https://github.com/alice/legacy", opts)
	assert.Contains(t, text, "legacy readme")

	require.Len(t, paths, 2)
	assert.Equal(t, "/alice/legacy/main/README.md", paths[0])
	assert.Equal(t, "/alice/legacy/master/README.md", paths[1])
}

func TestGitHubReadme_NoReadmeFallsBackToReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.GitHubRawBase = srv.URL

	text := GitHubReadme(context.Background(), "https://github.com/alice/empty", opts)
	assert.Equal(t, "GitHub Repository: https://github.com/alice/empty", text)
}

func TestGitHubReadme_UnparsableRepoPath(t *testing.T) {
	text := GitHubReadme(context.Background(), "https://github.com/alice", DefaultOptions())
	assert.Equal(t, "GitHub Repository: https://github.com/alice", text)
}
