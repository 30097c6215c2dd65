package session

import (
	"time"
)

// Session is an issued user session. Authentication is guest-style: any
// non-empty user id can open a session and receives a bearer token.
type Session struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
