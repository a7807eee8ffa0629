package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("owner not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Owner is a landlord account. Every record in the system is scoped to
// exactly one owner.
type Owner struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type ctxKey struct{}

// WithOwner returns a context carrying the authenticated owner's id.
func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, ownerID)
}

// OwnerFromContext yields the authenticated owner's id, if any.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}
