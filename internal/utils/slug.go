package utils

import (
	"regexp"
	"strings"
)

// slugPattern matches a normalized slug: lower-case alphanumeric runs
// separated by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify lowers s and collapses every run of characters outside [a-z0-9]
// into a single hyphen, trimming hyphens at both ends. It returns "" when
// s contains no usable characters, which callers must treat as invalid
// input.
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pending = false
		} else {
			pending = true
		}
	}
	return b.String()
}

// ValidSlug reports whether s is already in normalized slug form.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
