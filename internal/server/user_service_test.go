package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-profiler/internal/config"
	"github.com/jonathan/skill-profiler/internal/db"
)

// fakeUserStore keeps accounts in memory keyed by email.
type fakeUserStore struct {
	byEmail map[string]*db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*db.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (*db.User, error) {
	u := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	return s.byEmail[email], nil
}

func (s *fakeUserStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newTestUserService(t *testing.T) (*UserService, *fakeUserStore) {
	t.Helper()
	t.Setenv("BCRYPT_COST", "10")
	pwCfg, err := config.NewPasswordConfig()
	require.NoError(t, err)
	store := newFakeUserStore()
	return NewUserService(store, pwCfg), store
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, store := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, "hunter2hunter2", store.byEmail["alice@example.com"].PasswordHash)

	loggedIn, err := svc.Login(ctx, "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice Again", "alice@example.com", "hunter2hunter2")
	require.Error(t, err)

	var dup *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_LoginUnknownUser(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
}
