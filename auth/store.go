package auth

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by UserStore.Create when the email is taken.
// The uniqueness constraint on users.email is the authoritative guard; the
// service's prior EmailExists check only covers the common path.
var ErrDuplicateEmail = errors.New("email already exists")

// UserStore is the credential store: persisted user identities and password
// hashes. Nothing above this boundary ever sees a plaintext password.
type UserStore interface {
	// EmailExists reports whether a user with the given email is registered.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Create inserts a new user with the given email and password hash.
	// Returns ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, email, passwordHash string) (*User, error)

	// FindByEmail returns the user with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// SessionStore persists the association between opaque session tokens and
// users. Tokens are looked up per request; there is no ambient session state.
type SessionStore interface {
	// Create inserts a session for the given user.
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// Find returns the session for the token, or ErrNotFound.
	Find(ctx context.Context, token string) (*Session, error)

	// Touch moves the session's expiry forward (sliding expiration).
	Touch(ctx context.Context, token string, expiresAt time.Time) error

	// Delete removes the session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired purges sessions whose expiry is before now and returns
	// the number of rows removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
