// api/auth/gate_test.go
package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/fixhub-app/fixhub/api/auth"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/test/mock"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

func newGate(sessions auth.Sessions, profiles auth.ProfileReader) *auth.Service {
	return auth.NewService(sessions, profiles, mock.NopAuditService{}, auth.NewAttemptTracker(5, 0))
}

func TestCheckAdminNoSessionRedirectsToLogin(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("GetSession", tmock.Anything, "").
		Return(auth.Session{}, fixhub_errors.ErrNoSession)

	gate := newGate(sessions, new(mock.MockProfileReader))
	decision := gate.CheckAdmin(context.Background(), "", "203.0.113.9")

	assert.False(t, decision.Allowed)
	assert.Equal(t, auth.RedirectLogin, decision.Redirect)
}

func TestCheckAdminNonAdminRedirectsHome(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("GetSession", tmock.Anything, "tok").
		Return(auth.Session{UserID: "u-1", Email: "user@example.com"}, nil)

	profiles := new(mock.MockProfileReader)
	profiles.On("GetRole", tmock.Anything, "u-1").Return(model.RoleUser, nil)

	gate := newGate(sessions, profiles)
	decision := gate.CheckAdmin(context.Background(), "tok", "203.0.113.9")

	assert.False(t, decision.Allowed)
	assert.Equal(t, auth.RedirectHome, decision.Redirect)
}

func TestCheckAdminAllowsAdminRole(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("GetSession", tmock.Anything, "tok").
		Return(auth.Session{UserID: "u-1", Email: "admin@example.com"}, nil)

	profiles := new(mock.MockProfileReader)
	profiles.On("GetRole", tmock.Anything, "u-1").Return(model.RoleAdmin, nil)

	gate := newGate(sessions, profiles)
	decision := gate.CheckAdmin(context.Background(), "tok", "203.0.113.9")

	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.Redirect)
	assert.Equal(t, "u-1", decision.UserID)
	assert.Equal(t, model.RoleAdmin, decision.Role)
}

// The documented fallback: a role lookup failing with the profile-not-found
// or row-level-security signature grants access.
func TestCheckAdminRoleLookupFallback(t *testing.T) {
	for _, lookupErr := range []error{
		fixhub_errors.ErrProfileNotFound,
		fixhub_errors.ErrRowLevelSecurity,
	} {
		t.Run(lookupErr.Error(), func(t *testing.T) {
			sessions := new(mock.MockSessions)
			sessions.On("GetSession", tmock.Anything, "tok").
				Return(auth.Session{UserID: "u-1", Email: "admin@example.com"}, nil)

			profiles := new(mock.MockProfileReader)
			profiles.On("GetRole", tmock.Anything, "u-1").Return("", lookupErr)

			gate := newGate(sessions, profiles)
			decision := gate.CheckAdmin(context.Background(), "tok", "203.0.113.9")

			assert.True(t, decision.Allowed)
			assert.Equal(t, model.RoleAdmin, decision.Role)
		})
	}
}

func TestCheckAdminOtherLookupErrorRedirectsHome(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("GetSession", tmock.Anything, "tok").
		Return(auth.Session{UserID: "u-1"}, nil)

	profiles := new(mock.MockProfileReader)
	profiles.On("GetRole", tmock.Anything, "u-1").Return("", errors.New("connection refused"))

	gate := newGate(sessions, profiles)
	decision := gate.CheckAdmin(context.Background(), "tok", "203.0.113.9")

	assert.False(t, decision.Allowed)
	assert.Equal(t, auth.RedirectHome, decision.Redirect)
}

func TestCheckAdminUsesMemoizedDecision(t *testing.T) {
	// Mocks carry no expectations: any session or role lookup would fail the test.
	gate := newGate(new(mock.MockSessions), new(mock.MockProfileReader))

	memo := auth.Decision{Allowed: true, UserID: "u-1", Role: model.RoleAdmin}
	ctx := auth.WithDecision(context.Background(), memo)

	decision := gate.CheckAdmin(ctx, "tok", "203.0.113.9")
	assert.Equal(t, memo, decision)
}

func TestCheckAdminAuditFailureDoesNotChangeDecision(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("GetSession", tmock.Anything, "tok").
		Return(auth.Session{UserID: "u-1", Email: "admin@example.com"}, nil)

	profiles := new(mock.MockProfileReader)
	profiles.On("GetRole", tmock.Anything, "u-1").Return(model.RoleAdmin, nil)

	auditService := new(mock.MockAuditService)
	auditService.On("LogEvent", tmock.Anything, tmock.Anything).
		Return(errors.New("sink unavailable"))

	gate := auth.NewService(sessions, profiles, auditService, auth.NewAttemptTracker(5, 0))
	decision := gate.CheckAdmin(context.Background(), "tok", "203.0.113.9")

	assert.True(t, decision.Allowed)
	auditService.AssertCalled(t, "LogEvent", tmock.Anything, tmock.Anything)
}
