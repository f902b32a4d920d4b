// Package auth defines the role model and authorization policy for
// protected routes. Roles are ordered by capability and a policy check
// compares the caller's resolved role against the minimum required one,
// independent of how that role was established (session token or admin
// key). Credential handling lives in the middleware package; this package
// only answers "may role X do something that needs role Y".
package auth

import "strings"

// Role names a capability level. The zero value is not a valid role.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// rank orders roles by capability. Unknown roles have no rank and fail
// every policy check.
var rank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// Valid reports whether r names a known role.
func Valid(r Role) bool {
	_, ok := rank[r]
	return ok
}

// Parse normalizes a raw role string to a Role. It returns false for
// values outside the known set.
func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, Valid(r)
}

// Allows reports whether a caller holding 'have' may perform an action
// requiring at least 'need'. Unknown roles on either side are denied.
func Allows(have, need Role) bool {
	h, okH := rank[have]
	n, okN := rank[need]
	return okH && okN && h >= n
}
