package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/docuforge/docgen-api/internal/api/metrics"
	"github.com/docuforge/docgen-api/internal/core/domain"
	"github.com/docuforge/docgen-api/internal/core/ports"
)

// SessionResolver is the interface the gate uses to resolve opaque cookie
// tokens. The store is the sole source of truth for token validity.
type SessionResolver interface {
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
}

// GateConfig controls the cookie-session authorization gate.
type GateConfig struct {
	// CookieName is the session cookie the gate reads.
	CookieName string
	// LoginPath is exempt from the check and is the redirect target for
	// every denial.
	LoginPath string
	// RequiredRole, when non-empty, must match the session owner's role.
	RequiredRole string
}

// SessionGate intercepts every request on the protected prefix and resolves
// the session cookie before any handler runs. Outcomes:
//
//   - no cookie, or token invalid/expired/unresolvable: redirect to the
//     login path. Invalid and expired are deliberately indistinguishable;
//     the stale cookie is cleared. A storage failure also denies (fail
//     closed) but keeps the cookie, since the credential may still be valid.
//   - role mismatch: 403 without touching the cookie; the credential may be
//     legitimately valid elsewhere.
//   - success: owner identity is injected into context and the request
//     proceeds unmodified.
//
// The gate evaluates exactly once per request and never retries.
func SessionGate(store SessionResolver, cfg GateConfig, audit ports.AuditSink, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == cfg.LoginPath {
				return next(c)
			}

			cookie, err := c.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				metrics.GateDecisionsTotal.WithLabelValues("denied").Inc()
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}

			sess, err := store.FindByToken(c.Request().Context(), cookie.Value)
			if err != nil {
				metrics.GateDecisionsTotal.WithLabelValues("denied").Inc()
				recordDenial(audit, "session_rejected")

				if errors.Is(err, domain.ErrStorageUnavailable) {
					log.Error().Err(err).Msg("session store unreachable, denying request")
					return c.Redirect(http.StatusFound, cfg.LoginPath)
				}

				ClearSessionCookie(c, cfg.CookieName)
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}

			if cfg.RequiredRole != "" && sess.Role != cfg.RequiredRole {
				metrics.GateDecisionsTotal.WithLabelValues("forbidden").Inc()
				recordDenial(audit, "insufficient_role")
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			c.Set("user_id", sess.UserID)
			c.Set("role", sess.Role)
			c.Set("session_token", sess.Token)

			metrics.GateDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func recordDenial(audit ports.AuditSink, reason string) {
	if audit == nil {
		return
	}
	audit.Record(domain.AuditEvent{
		Kind:    domain.AuditGateDenial,
		Outcome: domain.AuditRejected,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}
