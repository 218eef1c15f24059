package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-profiler/internal/config"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	svc, _ := newTestUserService(t)
	jwtSvc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	return NewAuthHandler(svc, jwtSvc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Alice", resp.User.Name)
	// Password hash must never serialize
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h := newTestAuthHandler(t)

	tests := []RegisterRequest{
		{Name: "", Email: "alice@example.com", Password: "hunter2hunter2"},
		{Name: "Alice", Email: "not-an-email", Password: "hunter2hunter2"},
		{Name: "Alice", Email: "alice@example.com", Password: "short"},
	}
	for _, req := range tests {
		rec := postJSON(t, h.Register, "/auth/register", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation error")
	}
}

func TestAuthHandler_RegisterInvalidBody(t *testing.T) {
	h := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_LoginRoundTrip(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Login, "/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
