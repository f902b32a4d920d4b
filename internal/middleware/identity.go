package middleware

// identity.go holds the context keys and typed accessors shared by the
// middleware chain and handlers. Authenticate stores the resolved user id
// and role here; everything downstream reads them through these helpers
// instead of re-parsing credentials.

import (
	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/auth"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// setIdentity records the authenticated principal on the request context.
func setIdentity(c echo.Context, userID uint64, role auth.Role) {
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
}

// UserID returns the authenticated user id. It is zero for anonymous and
// key-authenticated requests.
func UserID(c echo.Context) uint64 {
	if v, ok := c.Get(ctxUserID).(uint64); ok {
		return v
	}
	return 0
}

// RoleOf returns the resolved role for the request and whether the
// request carries an authenticated identity at all.
func RoleOf(c echo.Context) (auth.Role, bool) {
	r, ok := c.Get(ctxRole).(auth.Role)
	return r, ok
}
