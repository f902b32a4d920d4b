package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/auth"
)

// Authenticate returns middleware that resolves the caller's identity
// before any policy check runs. Two credential sources are accepted:
//
//   - X-Admin-Key, compared in constant time against the configured key.
//     A match resolves to the admin role with no user id. An empty
//     configured key disables this path entirely.
//   - Authorization: Bearer <jwt>, a verified HS256 token whose sub and
//     role claims become the request identity.
//
// Requests with neither credential are rejected with 401. Role gating is
// left entirely to RequireRole; handlers never inspect headers.
func Authenticate(secret, adminKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key := c.Request().Header.Get("X-Admin-Key"); key != "" {
				if adminKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1 {
					setIdentity(c, 0, auth.RoleAdmin)
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid admin key"})
			}

			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing credentials"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			roleStr, _ := claims["role"].(string)
			role, ok := auth.Parse(roleStr)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			setIdentity(c, subjectID(claims), role)
			return next(c)
		}
	}
}

// subjectID extracts the numeric sub claim. JWT numbers decode as
// float64; the string form is parsed for tokens minted elsewhere.
func subjectID(claims jwt.MapClaims) uint64 {
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v)
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
