// api/auth/login.go
package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/fixhub-app/fixhub/api/audit"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

// Login exchanges credentials for a session token and confirms the admin role
// through the privileged server-side check, never through client-readable
// data. If the role check fails after the credential exchange succeeded, the
// fresh session is revoked before the error surfaces so no
// authenticated-but-unauthorized session persists. User-facing messages stay
// generic; the precise cause is audited.
func (s *Service) Login(ctx context.Context, email, password, origin string) (string, Session, error) {
	s.emit(ctx, audit.AuditLog{
		Email:  email,
		Action: audit.ActionLoginAttempt,
		Origin: origin,
	})

	token, session, err := s.sessions.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.recordFailure(ctx, email, origin, "credential exchange failed")
		return "", Session{}, fixhub_errors.ErrInvalidCredentials
	}

	// Login is the strict check the gate's fallback later leans on, so any
	// role lookup error revokes the fresh session here.
	role, err := s.profiles.GetRole(ctx, session.UserID)
	if err != nil {
		s.revokeAfterFailedCheck(ctx, token, session)
		s.recordFailure(ctx, email, origin, "role check failed: "+err.Error())
		return "", Session{}, fixhub_errors.ErrRoleCheckFailed
	}
	if role != model.RoleAdmin {
		s.revokeAfterFailedCheck(ctx, token, session)
		s.recordFailure(ctx, email, origin, "role is not admin")
		return "", Session{}, fixhub_errors.ErrAccessDenied
	}

	s.attempts.Reset(email)
	s.emit(ctx, audit.AuditLog{
		UserID:  session.UserID,
		Email:   email,
		Action:  audit.ActionLoginSuccess,
		Allowed: true,
		Origin:  origin,
	})
	return token, session, nil
}

// Logout revokes the session and audits the sign-out.
func (s *Service) Logout(ctx context.Context, token, origin string) error {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return fixhub_errors.ErrNoSession
	}
	if err := s.sessions.SignOut(ctx, token); err != nil {
		return err
	}
	s.emit(ctx, audit.AuditLog{
		UserID: session.UserID,
		Email:  session.Email,
		Action: audit.ActionLogout,
		Origin: origin,
	})
	return nil
}

func (s *Service) revokeAfterFailedCheck(ctx context.Context, token string, session Session) {
	if err := s.sessions.SignOut(ctx, token); err != nil {
		logger.Error("Failed to revoke session after failed role check",
			zap.Error(err),
			zap.String("userID", session.UserID))
	}
}

func (s *Service) recordFailure(ctx context.Context, email, origin, detail string) {
	s.emit(ctx, audit.AuditLog{
		Email:  email,
		Action: audit.ActionLoginFailure,
		Origin: origin,
		Detail: detail,
	})

	count, lockout := s.attempts.RecordFailure(email)
	if lockout {
		logger.Warn("Repeated authentication failures",
			zap.String("email", email),
			zap.Int("failures", count))
		s.emit(ctx, audit.AuditLog{
			Email:  email,
			Action: audit.ActionSecurityEvent,
			Origin: origin,
			Detail: "failed attempt threshold reached",
		})
	}
}
