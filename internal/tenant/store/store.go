package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rentroll/internal/billing"
	"rentroll/internal/tenant"
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

const selectTenantColumns = `
	t.id, t.unit_id, t.owner_id, t.name, t.phone, t.email,
	t.move_in_date, t.move_out_date, t.status,
	u.unit_number, u.building_id, b.name, t.created_at
`

func scanTenant(s scanner) (*tenant.Tenant, error) {
	var t tenant.Tenant

	var phone, email sql.NullString

	var statusStr string

	if err := s.Scan(
		&t.ID, &t.UnitID, &t.OwnerID, &t.Name, &phone, &email,
		&t.MoveInDate, &t.MoveOutDate, &statusStr,
		&t.UnitNumber, &t.BuildingID, &t.BuildingName, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	t.Phone = phone.String
	t.Email = email.String
	t.Status = tenant.Status(statusStr)

	return &t, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateTenant inserts the tenant and marks the unit occupied in one
// database transaction, so the unit flag cannot drift from the tenant row.
func (s *Store) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO tenants (unit_id, owner_id, name, phone, email, move_in_date, move_out_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		t.UnitID, t.OwnerID, t.Name, nullable(t.Phone), nullable(t.Email),
		t.MoveInDate, t.MoveOutDate, t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating tenant: %w", err)
	}

	occupyQuery := `UPDATE units SET status = 'occupied' WHERE id = $1 AND owner_id = $2`
	if _, err := dbTx.ExecContext(ctx, occupyQuery, t.UnitID, t.OwnerID); err != nil {
		return fmt.Errorf("marking unit occupied: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTenant(ctx context.Context, ownerID, id uuid.UUID) (*tenant.Tenant, error) {
	query := `SELECT ` + selectTenantColumns + `
		FROM tenants t
		JOIN units u ON t.unit_id = u.id
		JOIN buildings b ON u.building_id = b.id
		WHERE t.id = $1 AND t.owner_id = $2`

	t, err := scanTenant(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenant.ErrNotFound
		}

		return nil, fmt.Errorf("getting tenant: %w", err)
	}

	return t, nil
}

func (s *Store) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	query := `
		UPDATE tenants
		SET unit_id = $1, name = $2, phone = $3, email = $4,
		    move_in_date = $5, move_out_date = $6, status = $7
		WHERE id = $8 AND owner_id = $9
	`

	if _, err := s.db.ExecContext(ctx, query,
		t.UnitID, t.Name, nullable(t.Phone), nullable(t.Email),
		t.MoveInDate, t.MoveOutDate, t.Status, t.ID, t.OwnerID,
	); err != nil {
		return fmt.Errorf("updating tenant: %w", err)
	}

	return nil
}

func (s *Store) ListTenants(ctx context.Context, ownerID uuid.UUID, filter tenant.ListFilter) ([]*tenant.Tenant, error) {
	query := `SELECT ` + selectTenantColumns + `
		FROM tenants t
		JOIN units u ON t.unit_id = u.id
		JOIN buildings b ON u.building_id = b.id
		WHERE t.owner_id = $1`

	args := []any{ownerID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.BuildingID != nil {
		query += fmt.Sprintf(" AND u.building_id = $%d", argIdx)

		args = append(args, *filter.BuildingID)
	}

	query += " ORDER BY t.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant

	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}

		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenant rows: %w", err)
	}

	return tenants, nil
}

// DeleteTenant removes the tenant and marks the unit vacant in one
// database transaction.
func (s *Store) DeleteTenant(ctx context.Context, ownerID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var unitID uuid.UUID

	query := `DELETE FROM tenants WHERE id = $1 AND owner_id = $2 RETURNING unit_id`

	if err := dbTx.QueryRowContext(ctx, query, id, ownerID).Scan(&unitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tenant.ErrNotFound
		}

		return fmt.Errorf("deleting tenant: %w", err)
	}

	vacateQuery := `UPDATE units SET status = 'vacant' WHERE id = $1 AND owner_id = $2`
	if _, err := dbTx.ExecContext(ctx, vacateQuery, unitID, ownerID); err != nil {
		return fmt.Errorf("marking unit vacant: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// UnitForTenant returns the unit a tenant currently occupies.
func (s *Store) UnitForTenant(ctx context.Context, ownerID, tenantID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT unit_id FROM tenants WHERE id = $1 AND owner_id = $2`

	var unitID uuid.UUID

	if err := s.db.QueryRowContext(ctx, query, tenantID, ownerID).Scan(&unitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, tenant.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("resolving tenant unit: %w", err)
	}

	return unitID, nil
}

// ResolveOccupant finds the active tenant of a unit in a building by unit
// number, along with the unit's listed rent. Returns nil when the unit is
// unknown or has no active tenant.
func (s *Store) ResolveOccupant(ctx context.Context, ownerID, buildingID uuid.UUID, unitNumber string) (*billing.Occupant, error) {
	query := `
		SELECT u.id, t.id, u.rent_amount
		FROM units u
		JOIN tenants t ON t.unit_id = u.id AND t.status = 'active'
		WHERE u.owner_id = $1 AND u.building_id = $2 AND u.unit_number = $3
		ORDER BY t.created_at DESC
		LIMIT 1
	`

	var occ billing.Occupant

	err := s.db.QueryRowContext(ctx, query, ownerID, buildingID, unitNumber).
		Scan(&occ.UnitID, &occ.TenantID, &occ.Rent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("resolving occupant: %w", err)
	}

	return &occ, nil
}
