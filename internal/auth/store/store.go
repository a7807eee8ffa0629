package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"rentroll/internal/auth"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateOwner(ctx context.Context, o *auth.Owner) error {
	query := `
		INSERT INTO owners (full_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, o.FullName, o.Email, o.PasswordHash).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrEmailTaken
		}

		return fmt.Errorf("creating owner: %w", err)
	}

	return nil
}

func (s *Store) GetOwnerByEmail(ctx context.Context, email string) (*auth.Owner, error) {
	query := `
		SELECT id, full_name, email, password_hash, created_at
		FROM owners
		WHERE email = $1
	`

	var o auth.Owner

	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&o.ID, &o.FullName, &o.Email, &o.PasswordHash, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}

		return nil, fmt.Errorf("getting owner: %w", err)
	}

	return &o, nil
}
