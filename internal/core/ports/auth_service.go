package ports

import (
	"context"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

// AuthService covers both authentication surfaces: the stateless bearer-token
// API login and the stateful cookie-session admin login.
type AuthService interface {
	Register(ctx context.Context, email, password, name, role string) (*domain.User, error)

	// Login verifies credentials and issues a signed claims token for the
	// bearer API surface.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// LoginSession verifies credentials, optionally requiring a role, and
	// persists a server-side session for the cookie surface.
	LoginSession(ctx context.Context, email, password, requiredRole string) (*domain.Session, *domain.User, error)

	// Logout invalidates the session behind the token. Best-effort: a stale
	// or unknown token is not an error.
	Logout(ctx context.Context, token string) error
}
