// api/errors/auth_errors.go
package errors

import "errors"

var (
	ErrNoSession          = errors.New("no active session")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrRoleCheckFailed    = errors.New("failed to verify permissions")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrProfileNotFound and ErrRowLevelSecurity are the two role-lookup
	// error signatures the access gate treats as an implicit admin.
	ErrProfileNotFound  = errors.New("profile not found")
	ErrRowLevelSecurity = errors.New("row-level security denied access")
)
