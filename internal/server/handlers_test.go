package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/skill-profiler/internal/db"
)

func newBareServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		validator: validator.New(),
		uploadDir: t.TempDir(),
		log:       zap.NewNop(),
	}
}

func TestParseIngest_JSONBody(t *testing.T) {
	s := newBareServer(t)

	body := `{"urls": ["https://github.com/alice/project"], "options": {"deep": true}}`
	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	payload, err := s.parseIngest(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://github.com/alice/project"}, payload.URLs)
	assert.Equal(t, true, payload.Options["deep"])
	assert.Empty(t, payload.FilePath)
}

func TestParseIngest_JSONBodyRejectsBadURL(t *testing.T) {
	s := newBareServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"urls": ["not a url"]}`))
	req.Header.Set("Content-Type", "application/json")

	_, err := s.parseIngest(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestParseIngest_MultipartWithFileAndURLs(t *testing.T) {
	s := newBareServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, w.WriteField("urls", "https://a.dev, https://b.dev\nhttps://c.dev"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/ingest", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	payload, err := s.parseIngest(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.dev", "https://b.dev", "https://c.dev"}, payload.URLs)
	require.NotEmpty(t, payload.FilePath)
	assert.Equal(t, ".pdf", filepath.Ext(payload.FilePath))

	stored, err := os.ReadFile(payload.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(stored))
}

func TestParseIngest_MultipartWithoutFile(t *testing.T) {
	s := newBareServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("urls", "https://a.dev"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/ingest", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	payload, err := s.parseIngest(req)
	require.NoError(t, err)
	assert.Empty(t, payload.FilePath)
	assert.Equal(t, []string{"https://a.dev"}, payload.URLs)
}

func TestParseIngest_MultipartBadOptions(t *testing.T) {
	s := newBareServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("options", "{not json"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/ingest", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err := s.parseIngest(req)
	assert.Error(t, err)
}

func TestToJobResponse(t *testing.T) {
	profileID := uuid.New()
	detail := "boom"
	job := &db.Job{
		ID:        uuid.New(),
		Status:    db.StatusError,
		ProfileID: &profileID,
		Error:     &detail,
	}

	resp := toJobResponse(job)
	assert.Equal(t, job.ID, resp.ID)
	assert.Equal(t, db.StatusError, resp.Status)
	assert.Equal(t, -1, resp.Progress)
	assert.Equal(t, &profileID, resp.ProfileID)
	assert.Equal(t, &detail, resp.Error)
}

func TestToJobResponse_Queued(t *testing.T) {
	resp := toJobResponse(&db.Job{ID: uuid.New(), Status: db.StatusQueued})
	assert.Equal(t, 0, resp.Progress)
	assert.Nil(t, resp.Error)
}
