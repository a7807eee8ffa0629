package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rentroll/internal/unit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectUnitColumns = `
	u.id, u.building_id, u.owner_id, u.unit_number, u.floor, u.rent_amount, u.status, b.name
`

func scanUnit(s scanner) (*unit.Unit, error) {
	var u unit.Unit

	var floor sql.NullInt64

	var statusStr string

	if err := s.Scan(
		&u.ID, &u.BuildingID, &u.OwnerID, &u.UnitNumber, &floor, &u.RentAmount,
		&statusStr, &u.BuildingName,
	); err != nil {
		return nil, err
	}

	if floor.Valid {
		f := int(floor.Int64)
		u.Floor = &f
	}

	u.Status = unit.Status(statusStr)

	return &u, nil
}

func (s *Store) CreateUnit(ctx context.Context, u *unit.Unit) error {
	query := `
		INSERT INTO units (building_id, owner_id, unit_number, floor, rent_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var floor sql.NullInt64
	if u.Floor != nil {
		floor = sql.NullInt64{Int64: int64(*u.Floor), Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query,
		u.BuildingID, u.OwnerID, u.UnitNumber, floor, u.RentAmount, u.Status,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("creating unit: %w", err)
	}

	return nil
}

func (s *Store) GetUnit(ctx context.Context, ownerID, id uuid.UUID) (*unit.Unit, error) {
	query := `SELECT ` + selectUnitColumns + `
		FROM units u
		JOIN buildings b ON u.building_id = b.id
		WHERE u.id = $1 AND u.owner_id = $2`

	u, err := scanUnit(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, unit.ErrNotFound
		}

		return nil, fmt.Errorf("getting unit: %w", err)
	}

	return u, nil
}

func (s *Store) UpdateUnit(ctx context.Context, u *unit.Unit) error {
	query := `
		UPDATE units
		SET unit_number = $1, floor = $2, rent_amount = $3, status = $4
		WHERE id = $5 AND owner_id = $6
	`

	var floor sql.NullInt64
	if u.Floor != nil {
		floor = sql.NullInt64{Int64: int64(*u.Floor), Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, query,
		u.UnitNumber, floor, u.RentAmount, u.Status, u.ID, u.OwnerID,
	); err != nil {
		return fmt.Errorf("updating unit: %w", err)
	}

	return nil
}

func (s *Store) ListUnits(ctx context.Context, ownerID uuid.UUID, buildingID *uuid.UUID) ([]*unit.Unit, error) {
	query := `SELECT ` + selectUnitColumns + `
		FROM units u
		JOIN buildings b ON u.building_id = b.id
		WHERE u.owner_id = $1`

	args := []any{ownerID}

	if buildingID != nil {
		query += " AND u.building_id = $2"

		args = append(args, *buildingID)
	}

	query += " ORDER BY u.unit_number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer rows.Close()

	var units []*unit.Unit

	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}

		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unit rows: %w", err)
	}

	return units, nil
}

func (s *Store) DeleteUnit(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM units WHERE id = $1 AND owner_id = $2`

	if _, err := s.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("deleting unit: %w", err)
	}

	return nil
}
