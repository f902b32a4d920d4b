package router

import (
	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/handler"
)

// RegisterAuth registers the authentication surface. Unauthenticated
// operations live under /v1/auth; endpoints needing a resolved identity
// live under /v1 behind the authn middleware. The login rate limiter is
// passed in so the Redis dependency stays out of this package.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authn, loginLimit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login, loginLimit)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	p := e.Group("/v1", authn)
	p.GET("/me", a.Me)
	p.POST("/auth/logout-all", a.LogoutAll)
}
