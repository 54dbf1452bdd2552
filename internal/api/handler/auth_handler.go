package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docuforge/docgen-api/internal/api/metrics"
	"github.com/docuforge/docgen-api/internal/core/domain"
	"github.com/docuforge/docgen-api/internal/core/ports"
)

// AuthHandler serves the stateless bearer-token surface.
type AuthHandler struct {
	authService ports.AuthService
	audit       ports.AuditSink
}

func NewAuthHandler(authService ports.AuthService, audit ports.AuditSink) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role" validate:"required,oneof=admin client"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "internal server error"
		switch {
		case errors.Is(err, domain.ErrUserExists):
			status = http.StatusConflict
			msg = domain.ErrUserExists.Error()
		case errors.Is(err, domain.ErrMissingCredentials), errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusBadRequest
			msg = err.Error()
		case errors.Is(err, domain.ErrStorageUnavailable):
			status = http.StatusServiceUnavailable
			msg = "service unavailable"
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a signed claims token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	signed, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.record(req.Email, domain.AuditRejected, err.Error())
		metrics.LoginsTotal.WithLabelValues("api", "rejected").Inc()

		status := http.StatusUnauthorized
		msg := "invalid credentials"
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			status = http.StatusBadRequest
			msg = err.Error()
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
			// Same status and message: the caller learns nothing about
			// which part of the credential was wrong.
		case errors.Is(err, domain.ErrStorageUnavailable):
			status = http.StatusServiceUnavailable
			msg = "service unavailable"
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	h.record(req.Email, domain.AuditOK, "")
	metrics.LoginsTotal.WithLabelValues("api", "ok").Inc()

	return c.JSON(http.StatusOK, authResponse{Token: signed, User: user})
}

// Me returns the identity decoded from the bearer token.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"id":    identity.UserID,
		"email": identity.Email,
		"role":  identity.Role,
	})
}

func (h *AuthHandler) record(email, outcome, reason string) {
	if h.audit == nil {
		return
	}
	h.audit.Record(domain.AuditEvent{
		Kind:    domain.AuditLogin,
		Email:   email,
		Outcome: outcome,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}
