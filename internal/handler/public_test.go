package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/14vosx/hsc-auth-api/internal/repository"
)

func newPublicHandler(t *testing.T) (*PublicHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPublicHandler(repository.NewSeasonRepo(db), repository.NewArticleRepo(db)), mock
}

func TestGetActiveSeason(t *testing.T) {
	t.Run("no active season answers 404", func(t *testing.T) {
		h, mock := newPublicHandler(t)

		mock.ExpectQuery("SELECT (.+) FROM seasons WHERE status = 'active'").
			WillReturnRows(fullSeasonRows())

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons/active", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.GetActiveSeason(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "no active season", body["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active season is sanitized", func(t *testing.T) {
		h, mock := newPublicHandler(t)

		mock.ExpectQuery("SELECT (.+) FROM seasons WHERE status = 'active'").
			WillReturnRows(fullSeasonRows().
				AddRow(2, "winter-2025", "Winter 2025", "cold run", testTime(), testTime(), "active", testTime(), testTime()))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/seasons/active", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.GetActiveSeason(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "winter-2025", body["slug"])
		assert.Equal(t, "active", body["status"])
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "created_at")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetArticleHidesDrafts(t *testing.T) {
	h, mock := newPublicHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM articles WHERE slug = (.+) AND status = 'published'").
		WithArgs("scoop").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slug", "title", "summary", "body", "status", "published_at", "author_id", "created_at", "updated_at",
		}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/articles/scoop", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/articles/:slug")
	c.SetParamNames("slug")
	c.SetParamValues("scoop")
	require.NoError(t, h.GetArticle(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListArticlesOmitsBodies(t *testing.T) {
	h, mock := newPublicHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM articles WHERE status = 'published'").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slug", "title", "summary", "body", "status", "published_at", "author_id", "created_at", "updated_at",
		}).AddRow(1, "kickoff", "Kickoff", "short take", "full body text", "published", testTime(), 9, testTime(), testTime()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/articles", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListArticles(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "kickoff", first["slug"])
	assert.NotContains(t, first, "body")
	assert.NoError(t, mock.ExpectationsWereMet())
}
