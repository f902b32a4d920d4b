package model

import "time"

// User mirrors the 'users' table. Role holds one of the auth package's
// role names (viewer, editor, admin). PasswordHash is a bcrypt digest and
// never leaves the repository layer.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session mirrors the 'sessions' table. Only the SHA-256 hash of the raw
// session token is stored; the raw value exists solely on the client.
// A session is valid while RevokedAt is null and ExpiresAt lies in the
// future.
type Session struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `json:"created_at"`
}
