package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/14vosx/hsc-auth-api/internal/middleware"
	"github.com/14vosx/hsc-auth-api/internal/model"
	"github.com/14vosx/hsc-auth-api/internal/repository"
	"github.com/14vosx/hsc-auth-api/internal/utils"
)

// ArticleHandler bundles dependencies for the admin article endpoints.
type ArticleHandler struct {
	Articles *repository.ArticleRepo
}

func NewArticleHandler(a *repository.ArticleRepo) *ArticleHandler {
	return &ArticleHandler{Articles: a}
}

type createArticleReq struct {
	Slug    string  `json:"slug"`
	Title   string  `json:"title"`
	Summary *string `json:"summary"`
	Body    string  `json:"body"`
}

type updateArticleReq struct {
	Title   *string `json:"title"`
	Summary *string `json:"summary"`
	Body    *string `json:"body"`
}

// List handles GET /v1/admin/articles and returns drafts too.
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.Articles.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load articles"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": articles})
}

// Create handles POST /v1/admin/articles. Articles start in draft status
// and record the authenticated author; key-based callers record author 0.
func (h *ArticleHandler) Create(c echo.Context) error {
	var req createArticleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if strings.TrimSpace(req.Body) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body is required"})
	}
	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(title)
	}
	if !utils.ValidSlug(slug) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slug"})
	}

	article := &model.Article{
		Slug:     slug,
		Title:    title,
		Summary:  req.Summary,
		Body:     req.Body,
		AuthorID: middleware.UserID(c),
	}
	if err := h.Articles.Create(c.Request().Context(), article); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create article"})
	}
	return c.JSON(http.StatusCreated, article)
}

// Get handles GET /v1/admin/articles/:slug.
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.Articles.GetBySlug(c.Request().Context(), c.Param("slug"), false)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load article"})
	}
	return c.JSON(http.StatusOK, article)
}

// Update handles PATCH /v1/admin/articles/:slug. Absent fields keep
// their value.
func (h *ArticleHandler) Update(c echo.Context) error {
	var req updateArticleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
	}
	if req.Body != nil && strings.TrimSpace(*req.Body) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body cannot be empty"})
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")
	p := repository.ArticlePatch{Title: req.Title, Summary: req.Summary, Body: req.Body}
	if _, err := h.Articles.Update(ctx, slug, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update article"})
	}
	article, err := h.Articles.GetBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load article"})
	}
	return c.JSON(http.StatusOK, article)
}

// Publish handles POST /v1/admin/articles/:slug/publish. The first
// publish stamps published_at; republishing keeps the original stamp.
func (h *ArticleHandler) Publish(c echo.Context) error {
	return h.setPublished(c, true)
}

// Unpublish handles POST /v1/admin/articles/:slug/unpublish and returns
// the article to draft.
func (h *ArticleHandler) Unpublish(c echo.Context) error {
	return h.setPublished(c, false)
}

func (h *ArticleHandler) setPublished(c echo.Context, publish bool) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")
	if _, err := h.Articles.SetPublished(ctx, slug, publish); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not change article status"})
	}
	article, err := h.Articles.GetBySlug(ctx, slug, false)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load article"})
	}
	return c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /v1/admin/articles/:slug.
func (h *ArticleHandler) Delete(c echo.Context) error {
	rows, err := h.Articles.Delete(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete article"})
	}
	if rows == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
