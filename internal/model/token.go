package model

import "time"

// Token is an opaque bearer token row. Rows are never reused: every
// successful login inserts a fresh one, and expiry is enforced only by
// timestamp comparison at lookup time.
type Token struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
