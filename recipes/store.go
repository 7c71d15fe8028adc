package recipes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the read-only recipe repository.
type Store interface {
	// ListAll returns every recipe ordered by created_at descending.
	// Ties are broken by id descending so the order is stable.
	ListAll(ctx context.Context) ([]Recipe, error)
}

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Recipe, error) {
	query := `
		SELECT id, title, description, category, cooking_time, servings, difficulty, image_url, created_at
		FROM recipes
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []Recipe{}
	for rows.Next() {
		var r Recipe
		var imageURL sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Category, &r.CookingTime,
			&r.Servings, &r.Difficulty, &imageURL, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		r.ImageURL = imageURL.String
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}

	return recipes, nil
}
