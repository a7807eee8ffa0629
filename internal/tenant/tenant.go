package tenant

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("tenant not found")

// Status is operator-set; it does not flip automatically on move-out.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Tenant is a person renting a unit.
type Tenant struct {
	ID          uuid.UUID
	UnitID      uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Phone       string
	Email       string
	MoveInDate  time.Time
	MoveOutDate *time.Time
	Status      Status

	// Loaded via JOIN for list views.
	UnitNumber   string
	BuildingID   uuid.UUID
	BuildingName string

	CreatedAt time.Time
}
