package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/docuforge/docgen-api/internal/api/metrics"
	"github.com/docuforge/docgen-api/internal/token"
)

// ClaimsDecoder is the interface the middleware uses to verify bearer tokens.
type ClaimsDecoder interface {
	Decode(tokenStr string) (*token.Claims, error)
}

// Auth validates the bearer claims token and injects the decoded identity
// into context. Verification is purely in-memory: no store round trip.
func Auth(codec ClaimsDecoder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Decode(parts[1])
			if err != nil {
				metrics.TokenDecodeFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
