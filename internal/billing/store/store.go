package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentroll/internal/billing"
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

// Expected column order matches selectBillColumns.
const selectBillColumns = `
	bl.id, bl.tenant_id, bl.unit_id, bl.owner_id, bl.billing_month, bl.billing_year,
	bl.rent_amount, bl.elec_prev_reading, bl.elec_curr_reading, bl.elec_rate, bl.elec_amount,
	bl.water_amount, bl.total_amount, bl.status, bl.paid_at, bl.notes,
	t.name, u.unit_number, b.name, bl.created_at, bl.updated_at
`

const billJoins = `
	FROM bills bl
	JOIN tenants t ON bl.tenant_id = t.id
	JOIN units u ON bl.unit_id = u.id
	JOIN buildings b ON u.building_id = b.id
`

func scanBill(s scanner) (*billing.Bill, error) {
	var b billing.Bill

	var statusStr string

	var notes sql.NullString

	if err := s.Scan(
		&b.ID, &b.TenantID, &b.UnitID, &b.OwnerID, &b.BillingMonth, &b.BillingYear,
		&b.RentAmount, &b.ElecPrev, &b.ElecCurr, &b.ElecRate, &b.ElecAmount,
		&b.WaterAmount, &b.TotalAmount, &statusStr, &b.PaidAt, &notes,
		&b.TenantName, &b.UnitNumber, &b.BuildingName, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = billing.Status(statusStr)
	b.Notes = notes.String

	return &b, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const insertBillQuery = `
	INSERT INTO bills (
		tenant_id, unit_id, owner_id, billing_month, billing_year,
		rent_amount, elec_prev_reading, elec_curr_reading, elec_rate, elec_amount,
		water_amount, total_amount, status, notes, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func insertBill(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, b *billing.Bill,
) error {
	err := q.QueryRowContext(ctx, insertBillQuery,
		b.TenantID, b.UnitID, b.OwnerID, b.BillingMonth, b.BillingYear,
		b.RentAmount, b.ElecPrev, b.ElecCurr, b.ElecRate, b.ElecAmount,
		b.WaterAmount, b.TotalAmount, b.Status, nullable(b.Notes),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	return nil
}

func (s *Store) CreateBill(ctx context.Context, b *billing.Bill) error {
	return insertBill(ctx, s.db, b)
}

func (s *Store) GetBill(ctx context.Context, ownerID, id uuid.UUID) (*billing.Bill, error) {
	query := `SELECT ` + selectBillColumns + billJoins + `
		WHERE bl.id = $1 AND bl.owner_id = $2`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	return b, nil
}

func (s *Store) UpdateBill(ctx context.Context, b *billing.Bill) error {
	query := `
		UPDATE bills
		SET billing_month = $1, billing_year = $2,
		    rent_amount = $3, elec_prev_reading = $4, elec_curr_reading = $5,
		    elec_rate = $6, elec_amount = $7, water_amount = $8, total_amount = $9,
		    notes = $10, updated_at = NOW()
		WHERE id = $11 AND owner_id = $12
	`

	if _, err := s.db.ExecContext(ctx, query,
		b.BillingMonth, b.BillingYear,
		b.RentAmount, b.ElecPrev, b.ElecCurr,
		b.ElecRate, b.ElecAmount, b.WaterAmount, b.TotalAmount,
		nullable(b.Notes), b.ID, b.OwnerID,
	); err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}

	return nil
}

// UpdateStatus writes the payment status and paid_at timestamp together.
func (s *Store) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status billing.Status, paidAt *time.Time) error {
	query := `
		UPDATE bills
		SET status = $1, paid_at = $2, updated_at = NOW()
		WHERE id = $3 AND owner_id = $4
	`

	if _, err := s.db.ExecContext(ctx, query, status, paidAt, id, ownerID); err != nil {
		return fmt.Errorf("updating bill status: %w", err)
	}

	return nil
}

func (s *Store) ListBills(ctx context.Context, ownerID uuid.UUID, filter billing.ListFilter) ([]*billing.Bill, error) {
	query := `SELECT ` + selectBillColumns + billJoins + `
		WHERE bl.owner_id = $1`

	args := []any{ownerID}
	argIdx := 2

	if filter.TenantID != nil {
		query += fmt.Sprintf(" AND bl.tenant_id = $%d", argIdx)

		args = append(args, *filter.TenantID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND bl.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Year != nil {
		query += fmt.Sprintf(" AND bl.billing_year = $%d", argIdx)

		args = append(args, *filter.Year)
		argIdx++
	}

	if filter.Month != nil {
		query += fmt.Sprintf(" AND bl.billing_month = $%d", argIdx)

		args = append(args, *filter.Month)
	}

	query += " ORDER BY bl.billing_year DESC, bl.billing_month DESC, bl.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []*billing.Bill

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w", err)
	}

	return bills, nil
}

func (s *Store) DeleteBill(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM bills WHERE id = $1 AND owner_id = $2`

	if _, err := s.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	return nil
}

// importLockKey derives an advisory lock key so concurrent imports of the
// same owner and billing period serialize instead of double-billing.
func importLockKey(ownerID uuid.UUID, year, month int) int64 {
	h := fnv.New64a()
	h.Write([]byte(ownerID.String()))
	h.Write([]byte{0})
	h.Write(fmt.Appendf(nil, "%04d-%02d", year, month))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, ownerID uuid.UUID, year, month int) (billing.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(ownerID, year, month)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindExisting(ctx context.Context, tenantIDs []uuid.UUID, year, month int) ([]*billing.Bill, error) {
	if len(tenantIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(tenantIDs))
	args := []any{year, month}

	for i, id := range tenantIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+3)

		args = append(args, id)
	}

	query := `SELECT ` + selectBillColumns + billJoins + `
		WHERE bl.billing_year = $1 AND bl.billing_month = $2
		AND bl.tenant_id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := itx.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding existing bills: %w", err)
	}
	defer rows.Close()

	var bills []*billing.Bill

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating existing bill rows: %w", err)
	}

	return bills, nil
}

func (itx *importTx) CreateBills(ctx context.Context, bills []*billing.Bill) error {
	for _, b := range bills {
		if err := insertBill(ctx, itx.tx, b); err != nil {
			return err
		}
	}

	return nil
}
