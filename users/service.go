// Package users exposes the authenticated user's own profile.
// It is intentionally read-only: accounts are never updated or deleted here.
package users

import (
	"context"

	"github.com/user/recipebook-go/apperror"
)

// Service provides user profile operations.
type Service struct {
	store Store
}

// NewService creates a new users Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetProfile returns the profile for the given user id. The id comes from a
// resolved session, so a missing row means the session outlived its user.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load profile", err)
	}
	return p, nil
}
