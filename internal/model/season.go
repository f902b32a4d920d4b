package model

import "time"

// Season statuses form a closed set. A season starts as a draft, becomes
// active through the activation procedure and ends up closed, which is
// terminal. At most one season is active at any time.
const (
	SeasonStatusDraft  = "draft"
	SeasonStatusActive = "active"
	SeasonStatusClosed = "closed"
)

// Season mirrors the 'seasons' table. The slug is the immutable lookup key
// assigned by an admin; the numeric ID is assigned by the database.
// StartsAt and EndsAt are stored as UTC DATETIME values.
type Season struct {
	ID          uint64    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"` // nullable column
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
