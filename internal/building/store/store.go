package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rentroll/internal/building"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateBuilding(ctx context.Context, b *building.Building) error {
	query := `
		INSERT INTO buildings (owner_id, name, address, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, b.OwnerID, b.Name, b.Address).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating building: %w", err)
	}

	return nil
}

func (s *Store) GetBuilding(ctx context.Context, ownerID, id uuid.UUID) (*building.Building, error) {
	query := `
		SELECT id, owner_id, name, address, created_at
		FROM buildings
		WHERE id = $1 AND owner_id = $2
	`

	var b building.Building

	err := s.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&b.ID, &b.OwnerID, &b.Name, &b.Address, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, building.ErrNotFound
		}

		return nil, fmt.Errorf("getting building: %w", err)
	}

	return &b, nil
}

func (s *Store) UpdateBuilding(ctx context.Context, b *building.Building) error {
	query := `
		UPDATE buildings
		SET name = $1, address = $2
		WHERE id = $3 AND owner_id = $4
	`

	if _, err := s.db.ExecContext(ctx, query, b.Name, b.Address, b.ID, b.OwnerID); err != nil {
		return fmt.Errorf("updating building: %w", err)
	}

	return nil
}

func (s *Store) ListBuildings(ctx context.Context, ownerID uuid.UUID) ([]*building.Building, error) {
	query := `
		SELECT id, owner_id, name, address, created_at
		FROM buildings
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*building.Building

	for rows.Next() {
		var b building.Building
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Address, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning building: %w", err)
		}

		buildings = append(buildings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating building rows: %w", err)
	}

	return buildings, nil
}

// DeleteBuilding removes the building; units, tenants and bills under it
// go with it via ON DELETE CASCADE.
func (s *Store) DeleteBuilding(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM buildings WHERE id = $1 AND owner_id = $2`

	if _, err := s.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("deleting building: %w", err)
	}

	return nil
}
