// api/auth/login_test.go
package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/fixhub-app/fixhub/api/audit"
	"github.com/fixhub-app/fixhub/api/auth"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/test/mock"
)

func TestLoginRevokesSessionWhenRoleCheckErrors(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("SignInWithPassword", tmock.Anything, "admin@example.com", "pw").
		Return("tok", auth.Session{UserID: "u-1", Email: "admin@example.com"}, nil)
	sessions.On("SignOut", tmock.Anything, "tok").Return(nil)

	profiles := new(mock.MockProfileReader)
	profiles.On("GetRole", tmock.Anything, "u-1").Return("", errors.New("connection refused"))

	svc := auth.NewService(sessions, profiles, mock.NopAuditService{}, auth.NewAttemptTracker(5, 5*time.Minute))
	_, _, err := svc.Login(context.Background(), "admin@example.com", "pw", "203.0.113.9")

	assert.ErrorIs(t, err, fixhub_errors.ErrRoleCheckFailed)
	sessions.AssertCalled(t, "SignOut", tmock.Anything, "tok")
}

func TestLoginRevokesSessionForNonAdmin(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("SignInWithPassword", tmock.Anything, "user@example.com", "pw").
		Return("tok", auth.Session{UserID: "u-2", Email: "user@example.com"}, nil)
	sessions.On("SignOut", tmock.Anything, "tok").Return(nil)

	profiles := new(mock.MockProfileReader)
	profiles.On("GetRole", tmock.Anything, "u-2").Return(model.RoleUser, nil)

	svc := auth.NewService(sessions, profiles, mock.NopAuditService{}, auth.NewAttemptTracker(5, 5*time.Minute))
	_, _, err := svc.Login(context.Background(), "user@example.com", "pw", "203.0.113.9")

	assert.ErrorIs(t, err, fixhub_errors.ErrAccessDenied)
	sessions.AssertCalled(t, "SignOut", tmock.Anything, "tok")
}

func TestLoginSuccess(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("SignInWithPassword", tmock.Anything, "admin@example.com", "pw").
		Return("tok", auth.Session{UserID: "u-1", Email: "admin@example.com"}, nil)

	profiles := new(mock.MockProfileReader)
	profiles.On("GetRole", tmock.Anything, "u-1").Return(model.RoleAdmin, nil)

	svc := auth.NewService(sessions, profiles, mock.NopAuditService{}, auth.NewAttemptTracker(5, 5*time.Minute))
	token, session, err := svc.Login(context.Background(), "admin@example.com", "pw", "203.0.113.9")

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "u-1", session.UserID)
}

// Five failures for one email inside the window must produce exactly one
// security event, emitted at the fifth failure.
func TestLoginEmitsSingleSecurityEventAtThreshold(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("SignInWithPassword", tmock.Anything, "admin@example.com", "wrong").
		Return("", auth.Session{}, fixhub_errors.ErrInvalidCredentials)

	auditService := new(mock.MockAuditService)
	auditService.On("LogEvent", tmock.Anything, tmock.Anything).Return(nil)

	svc := auth.NewService(sessions, new(mock.MockProfileReader), auditService, auth.NewAttemptTracker(5, 5*time.Minute))

	securityEvents := func() int {
		n := 0
		for _, call := range auditService.Calls {
			if call.Arguments.Get(1).(audit.AuditLog).Action == audit.ActionSecurityEvent {
				n++
			}
		}
		return n
	}

	for i := 0; i < 4; i++ {
		_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong", "203.0.113.9")
		assert.ErrorIs(t, err, fixhub_errors.ErrInvalidCredentials)
	}
	assert.Equal(t, 0, securityEvents(), "no security event before the fifth failure")

	_, _, _ = svc.Login(context.Background(), "admin@example.com", "wrong", "203.0.113.9")
	assert.Equal(t, 1, securityEvents(), "exactly one security event at the fifth failure")

	_, _, _ = svc.Login(context.Background(), "admin@example.com", "wrong", "203.0.113.9")
	assert.Equal(t, 1, securityEvents(), "no repeat event after the threshold")
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := new(mock.MockSessions)
	sessions.On("GetSession", tmock.Anything, "tok").
		Return(auth.Session{UserID: "u-1", Email: "admin@example.com"}, nil)
	sessions.On("SignOut", tmock.Anything, "tok").Return(nil)

	svc := auth.NewService(sessions, new(mock.MockProfileReader), mock.NopAuditService{}, auth.NewAttemptTracker(5, 5*time.Minute))
	err := svc.Logout(context.Background(), "tok", "203.0.113.9")

	assert.NoError(t, err)
	sessions.AssertCalled(t, "SignOut", tmock.Anything, "tok")
}
