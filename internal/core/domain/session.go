package domain

import "time"

// Session binds an opaque token to a user for a bounded lifetime. The token
// is the primary lookup key; it carries no verifiable claims of its own.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`

	// Role is the owner's role at issuance. Roles are immutable after
	// account creation, so the copy stays authoritative and lets the gate
	// authorize with a single store lookup.
	Role string `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given
// instant. Expiry is lazy: a stored session may outlive its validity.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
