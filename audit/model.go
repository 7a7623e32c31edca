// api/audit/model.go
package audit

import "time"

const (
	ActionLoginAttempt  = "login.attempt"
	ActionLoginSuccess  = "login.success"
	ActionLoginFailure  = "login.failure"
	ActionLogout        = "logout"
	ActionGateCheck     = "gate.check"
	ActionGateAllowed   = "gate.allowed"
	ActionGateDenied    = "gate.denied"
	ActionSecurityEvent = "security.lockout"
	ActionRoleChange    = "admin.role_change"
)

// OriginUnknown is the placeholder network origin tag used when the caller
// did not supply one.
const OriginUnknown = "unknown"

type AuditLog struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	Allowed   bool      `json:"allowed"`
	Origin    string    `json:"origin"`
	Detail    string    `json:"detail,omitempty"`
}
