package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentroll/internal/billing"
	"rentroll/internal/unit"
)

// BillSource and UnitSource are satisfied by the billing and unit stores.
//
//go:generate mockgen -source=service.go -destination=source_mock.go -package=dashboard
type BillSource interface {
	ListBills(ctx context.Context, ownerID uuid.UUID, filter billing.ListFilter) ([]*billing.Bill, error)
}

type UnitSource interface {
	ListUnits(ctx context.Context, ownerID uuid.UUID, buildingID *uuid.UUID) ([]*unit.Unit, error)
}

type Service struct {
	bills BillSource
	units UnitSource
}

func NewService(bills BillSource, units UnitSource) *Service {
	return &Service{bills: bills, units: units}
}

// Summarize fetches the given year's bills, all units and the unpaid
// backlog, and folds them with Aggregate.
func (s *Service) Summarize(ctx context.Context, ownerID uuid.UUID, year int) (*Summary, error) {
	yearBills, err := s.bills.ListBills(ctx, ownerID, billing.ListFilter{Year: &year})
	if err != nil {
		return nil, fmt.Errorf("listing year bills: %w", err)
	}

	units, err := s.units.ListUnits(ctx, ownerID, nil)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}

	unpaid := billing.StatusUnpaid

	unpaidBills, err := s.bills.ListBills(ctx, ownerID, billing.ListFilter{Status: &unpaid})
	if err != nil {
		return nil, fmt.Errorf("listing unpaid bills: %w", err)
	}

	summary := Aggregate(yearBills, units, unpaidBills)

	return &summary, nil
}
