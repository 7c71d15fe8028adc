package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads user records by id.
type Store interface {
	FindByID(ctx context.Context, id int64) (*Profile, error)
}

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Profile, error) {
	var p Profile
	query := `SELECT id, email, created_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: not found", id)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &p, nil
}
