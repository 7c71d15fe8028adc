package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/recipebook-go/apperror"
	"github.com/user/recipebook-go/config"
)

// Messages surfaced verbatim to API clients. Login never distinguishes an
// unknown email from a wrong password.
const (
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// Service implements registration, login, logout, and per-request session
// authentication on top of the credential and session stores.
type Service struct {
	users    UserStore
	sessions SessionStore
	lifetime time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a new auth Service.
func NewService(users UserStore, sessions SessionStore, cfg *config.AuthConfig) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		lifetime: cfg.SessionLifetime,
		now:      time.Now,
	}
}

// Register creates a new user. The password is bcrypt-hashed before it is
// handed to the credential store; registration never creates a session.
func (s *Service) Register(ctx context.Context, email, password string) error {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return apperror.NewDatabaseError("failed to check email", err)
	}
	if exists {
		return apperror.NewConflictError(msgEmailExists, nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternalError("failed to hash password", err)
	}

	if _, err := s.users.Create(ctx, email, string(hashed)); err != nil {
		// The unique constraint closes the window between the check above
		// and the insert; a concurrent winner surfaces as the same conflict.
		if errors.Is(err, ErrDuplicateEmail) {
			return apperror.NewConflictError(msgEmailExists, nil)
		}
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

// Login verifies the credentials and, on success, creates a session and
// returns its opaque token. Unknown email and wrong password produce the
// same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", apperror.NewAuthError(msgInvalidCredentials, nil)
		}
		return "", apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", apperror.NewAuthError(msgInvalidCredentials, nil)
	}

	token := uuid.NewString()
	if err := s.sessions.Create(ctx, user.ID, token, s.now().Add(s.lifetime)); err != nil {
		return "", apperror.NewDatabaseError("failed to create session", err)
	}
	return token, nil
}

// Logout destroys the session for the given token. It is idempotent: an
// empty, malformed, or unknown token still succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	// Tokens are UUIDs; anything else cannot name a session, and must not
	// reach the uuid-typed column.
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperror.NewDatabaseError("failed to delete session", err)
	}
	return nil
}

// Authenticate resolves a session token to a user id. Expired sessions are
// rejected; live sessions have their expiry pushed forward by the configured
// lifetime.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	// A token that is not a UUID was never issued by Login; reject it
	// before it hits the store as a cast error.
	if _, err := uuid.Parse(token); err != nil {
		return 0, apperror.NewAuthError("invalid session", nil)
	}

	sess, err := s.sessions.Find(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, apperror.NewAuthError("invalid session", nil)
		}
		return 0, apperror.NewDatabaseError("failed to get session", err)
	}

	now := s.now()
	if sess.Expired(now) {
		return 0, apperror.NewAuthError("session expired", nil)
	}

	if err := s.sessions.Touch(ctx, token, now.Add(s.lifetime)); err != nil {
		return 0, apperror.NewDatabaseError("failed to extend session", err)
	}
	return sess.UserID, nil
}

// SweepExpired removes expired session rows. Expiry is enforced at lookup
// regardless; sweeping keeps the table from growing unbounded.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return n, nil
}
