package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docuforge/docgen-api/internal/core/domain"
	"github.com/docuforge/docgen-api/internal/core/ports"
	"github.com/docuforge/docgen-api/internal/token"
)

// Bootstrap holds the provisioning credentials for the initial admin
// account. A user whose email matches Email and whose stored hash is empty
// authenticates with Password; setting a real hash disables the exception
// permanently. Never applies to any other account.
type Bootstrap struct {
	Email    string
	Password string
}

// AuthService implements credential verification, registration, and both
// token-issuance surfaces.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	codec      *token.ClaimsCodec
	bootstrap  Bootstrap
	sessionTTL time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, codec *token.ClaimsCodec, bootstrap Bootstrap, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		codec:      codec,
		bootstrap:  bootstrap,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and issues a stateless claims token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.verify(ctx, email, password, "")
	if err != nil {
		return "", nil, err
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// LoginSession verifies credentials and persists a server-side session for
// the cookie surface. requiredRole, when non-empty, must match the user's
// role exactly; a mismatch is reported as domain.ErrInsufficientRole,
// distinct from a bad password.
func (s *AuthService) LoginSession(ctx context.Context, email, password, requiredRole string) (*domain.Session, *domain.User, error) {
	user, err := s.verify(ctx, email, password, requiredRole)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Role, s.sessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return sess, user, nil
}

// Logout invalidates the session behind token. Unconditionally idempotent:
// an empty, stale, or unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, tok string) error {
	if tok == "" {
		return nil
	}
	return s.sessions.Invalidate(ctx, tok)
}

func (s *AuthService) verify(ctx context.Context, email, password, requiredRole string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.ErrStorageUnavailable
	}

	switch {
	case user.PasswordHash != "":
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
	case s.isBootstrap(email, password):
		// Provisioning exception for the single reserved admin account.
	default:
		return nil, domain.ErrInvalidCredentials
	}

	if requiredRole != "" && user.Role != requiredRole {
		return nil, domain.ErrInsufficientRole
	}
	return user, nil
}

func (s *AuthService) isBootstrap(email, password string) bool {
	if s.bootstrap.Email == "" || s.bootstrap.Password == "" {
		return false
	}
	if email != s.bootstrap.Email {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.bootstrap.Password)) == 1
}
