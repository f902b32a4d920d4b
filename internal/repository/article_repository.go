package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/14vosx/hsc-auth-api/internal/model"
)

// ErrArticleNotFound indicates no article row matched the lookup.
var ErrArticleNotFound = errors.New("article not found")

const articleColumns = "id, slug, title, summary, body, status, published_at, author_id, created_at, updated_at"

// ArticleRepo manages persistence for news articles.
type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) *ArticleRepo { return &ArticleRepo{db: db} }

// Create inserts a draft article and reloads the stored row to populate
// DB-assigned fields.
func (r *ArticleRepo) Create(ctx context.Context, a *model.Article) error {
	const q = `INSERT INTO articles (slug, title, summary, body, author_id) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Slug, a.Title, a.Summary, a.Body, a.AuthorID)
	if err != nil {
		if isDuplicate(err) {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	const sel = `SELECT ` + articleColumns + ` FROM articles WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, a.ID).Scan(
		&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Body, &a.Status, &a.PublishedAt, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
	)
}

// List returns articles newest first. With publishedOnly set, drafts are
// filtered out and ordering switches to the publication time.
func (r *ArticleRepo) List(ctx context.Context, publishedOnly bool) ([]model.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC, id DESC`
	if publishedOnly {
		q = `SELECT ` + articleColumns + ` FROM articles WHERE status = 'published' ORDER BY published_at DESC, id DESC`
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(
			&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Body, &a.Status, &a.PublishedAt, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetBySlug fetches one article, returning ErrArticleNotFound when no row
// matches. With publishedOnly set, a draft behaves like a missing row so
// public routes never leak unpublished content.
func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles WHERE slug = ? LIMIT 1`
	if publishedOnly {
		q = `SELECT ` + articleColumns + ` FROM articles WHERE slug = ? AND status = 'published' LIMIT 1`
	}
	var a model.Article
	err := r.db.QueryRowContext(ctx, q, slug).Scan(
		&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Body, &a.Status, &a.PublishedAt, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ArticlePatch carries optional article field updates. Nil pointers leave
// columns untouched.
type ArticlePatch struct {
	Title   *string
	Summary *string
	Body    *string
}

// Empty reports whether the patch carries no recognized field.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Summary == nil && p.Body == nil
}

// Update applies the provided subset of fields and returns the affected
// row count. An empty patch executes no statement.
func (r *ArticleRepo) Update(ctx context.Context, slug string, p ArticlePatch) (int64, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Summary != nil {
		sets = append(sets, "summary = ?")
		args = append(args, *p.Summary)
	}
	if p.Body != nil {
		sets = append(sets, "body = ?")
		args = append(args, *p.Body)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	q := "UPDATE articles SET " + strings.Join(sets, ", ") + " WHERE slug = ?"
	args = append(args, slug)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetPublished flips the publication state and returns the affected row
// count. Publishing stamps published_at only on the first transition;
// unpublishing clears it.
func (r *ArticleRepo) SetPublished(ctx context.Context, slug string, publish bool) (int64, error) {
	var res sql.Result
	var err error
	if publish {
		res, err = r.db.ExecContext(ctx,
			"UPDATE articles SET status = 'published', published_at = COALESCE(published_at, NOW()) WHERE slug = ?",
			slug)
	} else {
		res, err = r.db.ExecContext(ctx,
			"UPDATE articles SET status = 'draft', published_at = NULL WHERE slug = ?",
			slug)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes an article row and returns the affected row count.
func (r *ArticleRepo) Delete(ctx context.Context, slug string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE slug = ?", slug)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
