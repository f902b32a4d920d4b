package router

import (
	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/auth"
	"github.com/14vosx/hsc-auth-api/internal/handler"
	"github.com/14vosx/hsc-auth-api/internal/middleware"
)

// RegisterAdmin registers the admin surface under /v1/admin. The whole
// group requires at least the editor role; season lifecycle switches
// (activate, close) additionally require admin because they affect what
// the public sees as the current season.
func RegisterAdmin(e *echo.Echo, s *handler.SeasonHandler, a *handler.ArticleHandler, authn echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/admin",
		authn,
		middleware.RequireRole(auth.RoleEditor),
	)

	// ---- Seasons ----
	g.GET("/seasons", s.List)
	g.POST("/seasons", s.Create)
	g.GET("/seasons/:slug", s.Get)
	g.PATCH("/seasons/:slug", s.Update)
	g.POST("/seasons/:slug/activate", s.Activate, middleware.RequireRole(auth.RoleAdmin))
	g.POST("/seasons/:slug/close", s.Close, middleware.RequireRole(auth.RoleAdmin))

	// ---- Articles ----
	g.GET("/articles", a.List)
	g.POST("/articles", a.Create)
	g.GET("/articles/:slug", a.Get)
	g.PATCH("/articles/:slug", a.Update)
	g.DELETE("/articles/:slug", a.Delete)
	g.POST("/articles/:slug/publish", a.Publish)
	g.POST("/articles/:slug/unpublish", a.Unpublish)
}
