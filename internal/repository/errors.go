// Package repository contains data access logic for users, sessions,
// seasons and articles. Sentinel errors let handlers distinguish failure
// scenarios with errors.Is and map them to distinct HTTP responses;
// anything that is not a sentinel is a storage failure the handler
// reports generically.
package repository

import (
	"errors"
	"strings"
)

// ErrSlugExists is returned when an insert collides with an existing slug.
// Handlers should translate this into an HTTP 409 response.
var ErrSlugExists = errors.New("slug already exists")

// isDuplicate reports whether err is MySQL's duplicate-entry error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
