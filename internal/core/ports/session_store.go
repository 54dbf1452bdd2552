package ports

import (
	"context"
	"time"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

// SessionStore is the durable record of issued sessions. It is the single
// source of truth for the validity of opaque session tokens.
type SessionStore interface {
	// Create issues a fresh session for the user with the given TTL,
	// recording the owner's role alongside. Token uniqueness is structurally
	// enforced; a collision is never returned.
	Create(ctx context.Context, userID, role string, ttl time.Duration) (*domain.Session, error)

	// FindByToken resolves a token to its live session. Returns
	// domain.ErrSessionNotFound for unknown tokens, domain.ErrSessionExpired
	// for sessions past their expiry, and domain.ErrStorageUnavailable when
	// the store cannot be reached.
	FindByToken(ctx context.Context, token string) (*domain.Session, error)

	// Invalidate removes the given tokens. Idempotent: missing tokens are
	// not an error.
	Invalidate(ctx context.Context, tokens ...string) error

	// InvalidateUser removes every live session owned by the user.
	InvalidateUser(ctx context.Context, userID string) error
}
