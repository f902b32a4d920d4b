// This file defines handlers for the unauthenticated read API. Responses
// are sanitized views: draft articles stay invisible and records expose
// no internal ids or author bookkeeping.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/model"
	"github.com/14vosx/hsc-auth-api/internal/repository"
)

// PublicHandler bundles read-only repositories for the public routes.
type PublicHandler struct {
	Seasons  *repository.SeasonRepo
	Articles *repository.ArticleRepo
}

func NewPublicHandler(s *repository.SeasonRepo, a *repository.ArticleRepo) *PublicHandler {
	return &PublicHandler{Seasons: s, Articles: a}
}

// PublicSeason is the sanitized season view served to anonymous clients.
type PublicSeason struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      string    `json:"status"`
}

// PublicArticle is the sanitized article view served to anonymous clients.
type PublicArticle struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     *string    `json:"summary"`
	Body        string     `json:"body,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
}

func toPublicSeason(s *model.Season) PublicSeason {
	return PublicSeason{
		Slug:        s.Slug,
		Name:        s.Name,
		Description: s.Description,
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
		Status:      s.Status,
	}
}

// ListSeasons handles GET /v1/seasons.
func (h *PublicHandler) ListSeasons(c echo.Context) error {
	seasons, err := h.Seasons.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seasons"})
	}
	out := make([]PublicSeason, 0, len(seasons))
	for i := range seasons {
		out = append(out, toPublicSeason(&seasons[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetActiveSeason handles GET /v1/seasons/active. No active season is a
// regular 404, not a server error.
func (h *PublicHandler) GetActiveSeason(c echo.Context) error {
	season, err := h.Seasons.GetActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load season"})
	}
	if season == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active season"})
	}
	return c.JSON(http.StatusOK, toPublicSeason(season))
}

// GetSeason handles GET /v1/seasons/:slug.
func (h *PublicHandler) GetSeason(c echo.Context) error {
	season, err := h.Seasons.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load season"})
	}
	if season == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
	}
	return c.JSON(http.StatusOK, toPublicSeason(season))
}

// ListArticles handles GET /v1/articles and serves published articles
// without their bodies.
func (h *PublicHandler) ListArticles(c echo.Context) error {
	articles, err := h.Articles.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load articles"})
	}
	out := make([]PublicArticle, 0, len(articles))
	for _, a := range articles {
		out = append(out, PublicArticle{
			Slug:        a.Slug,
			Title:       a.Title,
			Summary:     a.Summary,
			PublishedAt: a.PublishedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetArticle handles GET /v1/articles/:slug. Drafts answer 404 exactly
// like missing slugs.
func (h *PublicHandler) GetArticle(c echo.Context) error {
	a, err := h.Articles.GetBySlug(c.Request().Context(), c.Param("slug"), true)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load article"})
	}
	return c.JSON(http.StatusOK, PublicArticle{
		Slug:        a.Slug,
		Title:       a.Title,
		Summary:     a.Summary,
		Body:        a.Body,
		PublishedAt: a.PublishedAt,
	})
}
