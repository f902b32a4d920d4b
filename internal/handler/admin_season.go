package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/middleware"
	"github.com/14vosx/hsc-auth-api/internal/model"
	"github.com/14vosx/hsc-auth-api/internal/queue"
	"github.com/14vosx/hsc-auth-api/internal/repository"
	"github.com/14vosx/hsc-auth-api/internal/utils"
)

// SeasonHandler bundles dependencies for the admin season endpoints.
type SeasonHandler struct {
	Seasons *repository.SeasonRepo
	Events  *queue.Publisher
}

func NewSeasonHandler(s *repository.SeasonRepo, ev *queue.Publisher) *SeasonHandler {
	return &SeasonHandler{Seasons: s, Events: ev}
}

type createSeasonReq struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
}

// List handles GET /v1/admin/seasons.
func (h *SeasonHandler) List(c echo.Context) error {
	seasons, err := h.Seasons.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seasons"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seasons})
}

// Create handles POST /v1/admin/seasons. New seasons always start in
// draft status regardless of the request body; a missing slug is derived
// from the name.
func (h *SeasonHandler) Create(c echo.Context) error {
	var req createSeasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if !utils.ValidSlug(slug) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slug"})
	}
	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartsAt))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_at (RFC3339 expected)"})
	}
	endsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.EndsAt))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_at (RFC3339 expected)"})
	}
	if !endsAt.After(startsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be after starts_at"})
	}

	season := &model.Season{
		Slug:        slug,
		Name:        name,
		Description: req.Description,
		StartsAt:    startsAt.UTC(),
		EndsAt:      endsAt.UTC(),
	}
	if err := h.Seasons.Create(c.Request().Context(), season); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create season"})
	}
	return c.JSON(http.StatusCreated, season)
}

// Get handles GET /v1/admin/seasons/:slug.
func (h *SeasonHandler) Get(c echo.Context) error {
	season, err := h.Seasons.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load season"})
	}
	if season == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
	}
	return c.JSON(http.StatusOK, season)
}

// Update handles PATCH /v1/admin/seasons/:slug. Only fields present in
// the body change. An explicit null clears the description; for every
// other field a null is ignored, same as omitting it. A body that names
// no patchable field is a no-op and reports zero updated rows.
func (h *SeasonHandler) Update(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var p repository.SeasonPatch
	if v, ok := body["name"]; ok {
		if s, ok := v.(string); ok {
			name := strings.TrimSpace(s)
			if name == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
			}
			p.Name = &name
		}
	}
	if v, ok := body["description"]; ok {
		p.SetDescription = true
		if s, ok := v.(string); ok {
			p.Description = &s
		}
	}
	if v, ok := body["starts_at"]; ok {
		if s, ok := v.(string); ok {
			t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_at (RFC3339 expected)"})
			}
			u := t.UTC()
			p.StartsAt = &u
		}
	}
	if v, ok := body["ends_at"]; ok {
		if s, ok := v.(string); ok {
			t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_at (RFC3339 expected)"})
			}
			u := t.UTC()
			p.EndsAt = &u
		}
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")
	rows, err := h.Seasons.Patch(ctx, slug, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update season"})
	}
	season, err := h.Seasons.GetBySlug(ctx, slug)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load season"})
	}
	if season == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": rows, "season": season})
}

// Activate handles POST /v1/admin/seasons/:slug/activate. The response
// always carries ok; failures add one of the stable codes
// season_not_found, season_closed or tx_failed so callers can branch
// without parsing messages. Re-activating the active season succeeds.
func (h *SeasonHandler) Activate(c echo.Context) error {
	slug := c.Param("slug")
	ctx := c.Request().Context()
	if err := h.Seasons.Activate(ctx, slug); err != nil {
		switch {
		case errors.Is(err, repository.ErrSeasonNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "error": "season_not_found"})
		case errors.Is(err, repository.ErrSeasonClosed):
			return c.JSON(http.StatusConflict, echo.Map{"ok": false, "error": "season_closed"})
		default:
			// The transaction rolled back; the caller may retry.
			return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "error": "tx_failed", "detail": err.Error()})
		}
	}
	_ = h.Events.Publish(ctx, queue.NewEvent(queue.EventSeasonActivated, slug, middleware.UserID(c)))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Close handles POST /v1/admin/seasons/:slug/close. Closing is
// unconditional and idempotent; closing an already closed season changes
// nothing and still succeeds.
func (h *SeasonHandler) Close(c echo.Context) error {
	slug := c.Param("slug")
	ctx := c.Request().Context()
	if _, err := h.Seasons.Close(ctx, slug); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not close season"})
	}
	season, err := h.Seasons.GetBySlug(ctx, slug)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load season"})
	}
	if season == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "season not found"})
	}
	_ = h.Events.Publish(ctx, queue.NewEvent(queue.EventSeasonClosed, slug, middleware.UserID(c)))
	return c.JSON(http.StatusOK, season)
}
