package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservice/marketplace/internal/core/token"
)

// Auth verifies the bearer credential and injects its claims into context.
// The Authorization header wins; without one, the credential stored for
// the visitor is used when the LoadVisitor middleware ran first.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw == "" {
				if v := CurrentVisitor(c); v != nil {
					raw, _ = v.Tokens.Get(c.Request().Context())
				}
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			claims, err := token.Verify(raw, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)
			c.Set("token", token.Normalize(raw))

			return next(c)
		}
	}
}
