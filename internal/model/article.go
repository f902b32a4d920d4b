package model

import "time"

// Article statuses. Only published articles are visible on public routes.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
)

// Article mirrors the 'articles' table. Slug is unique and derived from the
// title at creation time unless the caller supplies one. PublishedAt is set
// when the article first transitions to published and cleared on unpublish.
type Article struct {
	ID          uint64     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     *string    `json:"summary"` // nullable column
	Body        string     `json:"body"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	AuthorID    uint64     `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
