package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("bill not found")

// Status represents the payment state of a bill.
type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

// Bill represents one billing period (month, year) for a tenant.
// ElecAmount and TotalAmount are derived by the calculator and never
// accepted from callers; UnitID is fixed at creation from the tenant's
// unit and is not re-derived on edits.
type Bill struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	UnitID       uuid.UUID
	OwnerID      uuid.UUID
	BillingMonth int
	BillingYear  int
	RentAmount   decimal.Decimal
	ElecPrev     decimal.Decimal
	ElecCurr     decimal.Decimal
	ElecRate     decimal.Decimal
	ElecAmount   decimal.Decimal
	WaterAmount  decimal.Decimal
	TotalAmount  decimal.Decimal
	Status       Status
	PaidAt       *time.Time
	Notes        string

	// Denormalized display context, loaded via JOIN.
	TenantName   string
	UnitNumber   string
	BuildingName string

	CreatedAt time.Time
	UpdatedAt *time.Time
}
