package domain

import "time"

// Audit event kinds.
const (
	AuditLogin      = "login"
	AuditAdminLogin = "admin_login"
	AuditLogout     = "logout"
	AuditGateDenial = "gate_denial"
)

// Audit outcomes.
const (
	AuditOK       = "ok"
	AuditRejected = "rejected"
)

// AuditEvent records a single authentication decision for the audit trail.
type AuditEvent struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Email   string    `json:"email"`
	Outcome string    `json:"outcome"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}
