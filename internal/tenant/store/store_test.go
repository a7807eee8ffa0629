package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentroll/internal/tenant"
	"rentroll/internal/tenant/store"
)

func newTenant(unitID, ownerID uuid.UUID) *tenant.Tenant {
	return &tenant.Tenant{
		UnitID:     unitID,
		OwnerID:    ownerID,
		Name:       "Somsak P.",
		MoveInDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:     tenant.StatusActive,
	}
}

func TestStore_CreateTenant_MarksUnitOccupied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	unitID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tenants").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(uuid.New().String(), time.Now()))
	mock.ExpectExec("UPDATE units SET status = 'occupied'").
		WithArgs(unitID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := store.New(db)
	err = s.CreateTenant(context.Background(), newTenant(unitID, ownerID))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed unit flip must roll the tenant insert back; no tenant row may
// survive without its unit marked occupied.
func TestStore_CreateTenant_RollsBackOnFlipFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	unitID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tenants").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(uuid.New().String(), time.Now()))
	mock.ExpectExec("UPDATE units SET status = 'occupied'").
		WithArgs(unitID, ownerID).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	s := store.New(db)
	err = s.CreateTenant(context.Background(), newTenant(unitID, ownerID))

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteTenant_MarksUnitVacant(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	unitID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM tenants").
		WithArgs(id, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"unit_id"}).AddRow(unitID.String()))
	mock.ExpectExec("UPDATE units SET status = 'vacant'").
		WithArgs(unitID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := store.New(db)
	err = s.DeleteTenant(context.Background(), ownerID, id)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteTenant_RollsBackOnFlipFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	unitID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM tenants").
		WithArgs(id, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"unit_id"}).AddRow(unitID.String()))
	mock.ExpectExec("UPDATE units SET status = 'vacant'").
		WithArgs(unitID, ownerID).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	s := store.New(db)
	err = s.DeleteTenant(context.Background(), ownerID, id)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteTenant_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM tenants").
		WillReturnRows(sqlmock.NewRows([]string{"unit_id"}))
	mock.ExpectRollback()

	s := store.New(db)
	err = s.DeleteTenant(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, tenant.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
