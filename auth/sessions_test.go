// api/auth/sessions_test.go
package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixhub-app/fixhub/api/auth"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
)

type stubUserStore struct {
	profiles map[string]*model.Profile
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*model.Profile, error) {
	p, ok := s.profiles[email]
	if !ok {
		return nil, fixhub_errors.ErrProfileNotFound
	}
	return p, nil
}

func newSessions(t *testing.T) *auth.JWTSessions {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	users := &stubUserStore{profiles: map[string]*model.Profile{
		"admin@example.com": {
			ID:           "u-1",
			Email:        "admin@example.com",
			Role:         model.RoleAdmin,
			PasswordHash: hash,
		},
	}}
	return auth.NewJWTSessions("test-secret", time.Hour, users, auth.NewMemoryRevoker())
}

func TestSignInAndGetSession(t *testing.T) {
	sessions := newSessions(t)
	ctx := context.Background()

	token, created, err := sessions.SignInWithPassword(ctx, "admin@example.com", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := sessions.GetSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, got.UserID)
	assert.Equal(t, "admin@example.com", got.Email)
	assert.Equal(t, created.TokenID, got.TokenID)
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	sessions := newSessions(t)

	_, _, err := sessions.SignInWithPassword(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, fixhub_errors.ErrInvalidCredentials)
}

func TestSignInRejectsUnknownEmail(t *testing.T) {
	sessions := newSessions(t)

	_, _, err := sessions.SignInWithPassword(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, fixhub_errors.ErrInvalidCredentials)
}

func TestGetSessionRejectsEmptyToken(t *testing.T) {
	sessions := newSessions(t)

	_, err := sessions.GetSession(context.Background(), "")
	assert.ErrorIs(t, err, fixhub_errors.ErrNoSession)
}

func TestGetSessionRejectsGarbageToken(t *testing.T) {
	sessions := newSessions(t)

	_, err := sessions.GetSession(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, fixhub_errors.ErrNoSession)
}

func TestSignOutRevokesToken(t *testing.T) {
	sessions := newSessions(t)
	ctx := context.Background()

	token, _, err := sessions.SignInWithPassword(ctx, "admin@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, sessions.SignOut(ctx, token))

	_, err = sessions.GetSession(ctx, token)
	assert.ErrorIs(t, err, fixhub_errors.ErrSessionRevoked)
}

func TestGetUserReturnsProfile(t *testing.T) {
	sessions := newSessions(t)
	ctx := context.Background()

	token, _, err := sessions.SignInWithPassword(ctx, "admin@example.com", "correct-horse")
	require.NoError(t, err)

	profile, err := sessions.GetUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)
	assert.True(t, profile.IsAdmin())
}
