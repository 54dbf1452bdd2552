package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/docuforge/docgen-api/internal/api/metrics"
	"github.com/docuforge/docgen-api/internal/api/middleware"
	"github.com/docuforge/docgen-api/internal/core/domain"
	"github.com/docuforge/docgen-api/internal/core/ports"
)

// AdminHandler serves the stateful cookie-session surface.
type AdminHandler struct {
	authService ports.AuthService
	audit       ports.AuditSink
	cookieName  string
	log         zerolog.Logger
}

func NewAdminHandler(authService ports.AuthService, audit ports.AuditSink, cookieName string, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		audit:       audit,
		cookieName:  cookieName,
		log:         log,
	}
}

type principalResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// Login authenticates an administrator and sets the session cookie.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  principalResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	sess, user, err := h.authService.LoginSession(c.Request().Context(), req.Email, req.Password, domain.RoleAdmin)
	if err != nil {
		h.record(req.Email, domain.AuditRejected, err.Error())
		metrics.LoginsTotal.WithLabelValues("admin", "rejected").Inc()

		status := http.StatusUnauthorized
		msg := "invalid credentials"
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			status = http.StatusBadRequest
			msg = err.Error()
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
			// Indistinguishable on purpose.
		case errors.Is(err, domain.ErrInsufficientRole):
			// Right password, wrong role: a distinct signal the client can
			// act on, and no credential is leaked by it.
			status = http.StatusForbidden
			msg = err.Error()
		case errors.Is(err, domain.ErrStorageUnavailable):
			status = http.StatusServiceUnavailable
			msg = "service unavailable"
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	h.record(req.Email, domain.AuditOK, "")
	metrics.LoginsTotal.WithLabelValues("admin", "ok").Inc()
	metrics.SessionsCreatedTotal.Inc()

	return c.JSON(http.StatusOK, principalResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

// Logout invalidates the current session and clears the cookie. Always
// succeeds from the caller's perspective: a missing or stale cookie is not
// an error, and a storage failure is logged but not surfaced.
//
// @Summary      Admin logout
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c echo.Context) error {
	tok := ""
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		tok = cookie.Value
	}

	if tok != "" {
		if err := h.authService.Logout(c.Request().Context(), tok); err != nil {
			h.log.Error().Err(err).Msg("session invalidation failed during logout")
		} else {
			metrics.SessionsInvalidatedTotal.Inc()
		}
	}

	middleware.ClearSessionCookie(c, h.cookieName)

	if h.audit != nil {
		h.audit.Record(domain.AuditEvent{
			Kind:    domain.AuditLogout,
			Outcome: domain.AuditOK,
			At:      time.Now().UTC(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AdminHandler) record(email, outcome, reason string) {
	if h.audit == nil {
		return
	}
	h.audit.Record(domain.AuditEvent{
		Kind:    domain.AuditAdminLogin,
		Email:   email,
		Outcome: outcome,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}
