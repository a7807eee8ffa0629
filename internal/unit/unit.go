package unit

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("unit not found")

// Status marks whether a unit currently has a tenant. It is flipped by
// tenant creation and deletion, not recomputed from tenancy.
type Status string

const (
	StatusOccupied Status = "occupied"
	StatusVacant   Status = "vacant"
)

// Unit is a rentable space within a building.
type Unit struct {
	ID         uuid.UUID
	BuildingID uuid.UUID
	OwnerID    uuid.UUID
	UnitNumber string
	Floor      *int
	RentAmount decimal.Decimal
	Status     Status

	// Loaded via JOIN for list views.
	BuildingName string
}
