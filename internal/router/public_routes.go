package router

import (
	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/handler"
)

// RegisterPublic registers the unauthenticated read endpoints. The cache
// middleware wraps the whole group; it degrades to a no-op when Redis is
// not configured. Echo matches /seasons/active before /seasons/:slug, so
// "active" is effectively a reserved slug.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/seasons", p.ListSeasons)
	g.GET("/seasons/active", p.GetActiveSeason)
	g.GET("/seasons/:slug", p.GetSeason)
	g.GET("/articles", p.ListArticles)
	g.GET("/articles/:slug", p.GetArticle)
}
