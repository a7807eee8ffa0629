package building

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("building not found")

// Building is a property owned by a landlord, containing rentable units.
type Building struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Address   string
	CreatedAt time.Time
}
