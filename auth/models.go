// Package auth is responsible for authentication: user registration, login,
// logout, password handling, and the session lifecycle.
// This file defines the entities of the authentication domain.
package auth

import "time"

// User represents a registered user.
// HashedPassword carries the bcrypt digest and is never serialized; it is the
// only persisted form of the password.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Do not expose hashed password
	CreatedAt      time.Time `json:"created_at"`
}

// Session associates an opaque token with a user. A session exists from a
// successful login until logout or expiry; once deleted it is never revived.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
