package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identity is the authenticated principal injected by the auth middleware
// (bearer) or the session gate (cookie).
type identity struct {
	UserID string
	Email  string
	Role   string
}

// ctxIdentity extracts the identity injected by the middleware and performs
// a fast-fail check before any service call: a missing role means no
// middleware ran, which is a wiring error surfaced as 401.
func ctxIdentity(c echo.Context) (identity, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)

	return identity{UserID: userID, Email: email, Role: role}, nil
}
