// Package middleware provides shared request processing for handlers:
// authentication, role policy enforcement, rate limiting and response
// caching.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/auth"
)

// RequireRole returns middleware enforcing the authorization policy: the
// identity resolved by Authenticate must hold at least the given role.
// Requests without an identity, with an unknown role or below the minimum
// are rejected with 403.
func RequireRole(min auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleOf(c)
			if !ok || !auth.Allows(role, min) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
