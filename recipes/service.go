package recipes

import (
	"context"

	"github.com/user/recipebook-go/apperror"
)

// Service provides the recipe listing operation.
type Service struct {
	store Store
}

// NewService creates a new recipes Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListAll returns the full catalog, newest first. A store failure is
// surfaced as an explicit error, never as an empty listing.
func (s *Service) ListAll(ctx context.Context) ([]Recipe, error) {
	recipes, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipes", err)
	}
	return recipes, nil
}
