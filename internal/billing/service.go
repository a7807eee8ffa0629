package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, ownerID, id uuid.UUID) (*Bill, error)
	UpdateBill(ctx context.Context, b *Bill) error
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status, paidAt *time.Time) error
	ListBills(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Bill, error)
	DeleteBill(ctx context.Context, ownerID, id uuid.UUID) error

	BeginImport(ctx context.Context, ownerID uuid.UUID, year, month int) (ImportTx, error)
}

type ImportTx interface {
	FindExisting(ctx context.Context, tenantIDs []uuid.UUID, year, month int) ([]*Bill, error)
	CreateBills(ctx context.Context, bills []*Bill) error
	Commit() error
	Rollback() error
}

// TenantDirectory resolves tenants and occupied units; implemented by the
// tenant store.
type TenantDirectory interface {
	UnitForTenant(ctx context.Context, ownerID, tenantID uuid.UUID) (uuid.UUID, error)
	ResolveOccupant(ctx context.Context, ownerID, buildingID uuid.UUID, unitNumber string) (*Occupant, error)
}

// Occupant is an active tenant in a unit, with the unit's listed rent.
type Occupant struct {
	UnitID   uuid.UUID
	TenantID uuid.UUID
	Rent     decimal.Decimal
}

type Service struct {
	repo    Repository
	tenants TenantDirectory
}

func NewService(repo Repository, tenants TenantDirectory) *Service {
	return &Service{repo: repo, tenants: tenants}
}

type CreateParams struct {
	TenantID     uuid.UUID
	BillingMonth int
	BillingYear  int
	Charges      ChargeInput
	Notes        string
}

// UpdateParams replaces all editable bill fields. The tenant and unit a
// bill belongs to are fixed at creation and cannot be changed.
type UpdateParams struct {
	BillingMonth int
	BillingYear  int
	Charges      ChargeInput
	Notes        string
}

type ListFilter struct {
	TenantID *uuid.UUID
	Status   *Status
	Year     *int
	Month    *int
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Bill, error) {
	unitID, err := s.tenants.UnitForTenant(ctx, ownerID, params.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolving tenant unit: %w", err)
	}

	charges := Calculate(params.Charges)
	warnNegativeConsumption(charges, params.TenantID)

	b := &Bill{
		TenantID:     params.TenantID,
		UnitID:       unitID,
		OwnerID:      ownerID,
		BillingMonth: params.BillingMonth,
		BillingYear:  params.BillingYear,
		RentAmount:   params.Charges.Rent,
		ElecPrev:     params.Charges.ElecPrev,
		ElecCurr:     params.Charges.ElecCurr,
		ElecRate:     params.Charges.ElecRate,
		ElecAmount:   charges.Elec,
		WaterAmount:  params.Charges.Water,
		TotalAmount:  charges.Total,
		Status:       StatusUnpaid,
		Notes:        params.Notes,
	}

	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Bill, error) {
	b, err := s.repo.GetBill(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	charges := Calculate(params.Charges)
	warnNegativeConsumption(charges, b.TenantID)

	b.BillingMonth = params.BillingMonth
	b.BillingYear = params.BillingYear
	b.RentAmount = params.Charges.Rent
	b.ElecPrev = params.Charges.ElecPrev
	b.ElecCurr = params.Charges.ElecCurr
	b.ElecRate = params.Charges.ElecRate
	b.ElecAmount = charges.Elec
	b.WaterAmount = params.Charges.Water
	b.TotalAmount = charges.Total
	b.Notes = params.Notes

	if err := s.repo.UpdateBill(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// SetPaid transitions a bill between paid and unpaid. The status and the
// paid_at timestamp are always written together: paid_at is set exactly
// when the bill becomes paid and cleared when it reverts to unpaid.
func (s *Service) SetPaid(ctx context.Context, ownerID, id uuid.UUID, paid bool) error {
	status := StatusUnpaid

	var paidAt *time.Time

	if paid {
		status = StatusPaid
		now := time.Now().UTC()
		paidAt = &now
	}

	return s.repo.UpdateStatus(ctx, ownerID, id, status, paidAt)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Bill, error) {
	return s.repo.ListBills(ctx, ownerID, filter)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteBill(ctx, ownerID, id)
}

// ImportItem is one CSV row of meter readings for a unit, before the unit
// and its tenant have been resolved.
type ImportItem struct {
	UnitNumber string
	ElecPrev   decimal.Decimal
	ElecCurr   decimal.Decimal
	ElecRate   decimal.Decimal
	Water      decimal.Decimal
	Notes      string
}

type ImportResult struct {
	Imported  []*Bill
	New       []CreateParams
	Conflicts []Conflict
	Unmatched []ImportItem
}

// Conflict pairs an incoming billing row with the bill that already exists
// for the same tenant and billing period.
type Conflict struct {
	Incoming CreateParams
	Existing *Bill
}

// ImportBatch turns a batch of meter readings for one building and billing
// period into bills. Each row is resolved to the unit's active tenant and
// the unit's listed rent. When any resolved row collides with an existing
// bill for the same (tenant, year, month), nothing is written and the
// conflicts are returned for the operator to resolve.
func (s *Service) ImportBatch(ctx context.Context, ownerID, buildingID uuid.UUID, year, month int, items []ImportItem) (*ImportResult, error) {
	if len(items) == 0 {
		return &ImportResult{}, nil
	}

	result := &ImportResult{}

	var params []CreateParams

	for _, item := range items {
		occ, err := s.tenants.ResolveOccupant(ctx, ownerID, buildingID, item.UnitNumber)
		if err != nil {
			return nil, fmt.Errorf("resolving unit %q: %w", item.UnitNumber, err)
		}

		if occ == nil {
			result.Unmatched = append(result.Unmatched, item)
			continue
		}

		params = append(params, CreateParams{
			TenantID:     occ.TenantID,
			BillingMonth: month,
			BillingYear:  year,
			Charges: ChargeInput{
				Rent:     occ.Rent,
				ElecPrev: item.ElecPrev,
				ElecCurr: item.ElecCurr,
				ElecRate: item.ElecRate,
				Water:    item.Water,
			},
			Notes: item.Notes,
		})
	}

	if len(params) == 0 {
		return result, nil
	}

	itx, err := s.repo.BeginImport(ctx, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	tenantIDs := make([]uuid.UUID, len(params))
	for i, p := range params {
		tenantIDs[i] = p.TenantID
	}

	existing, err := itx.FindExisting(ctx, tenantIDs, year, month)
	if err != nil {
		return nil, fmt.Errorf("find existing bills: %w", err)
	}

	billed := make(map[uuid.UUID]*Bill, len(existing))
	for _, b := range existing {
		billed[b.TenantID] = b
	}

	for _, p := range params {
		if b, found := billed[p.TenantID]; found {
			result.Conflicts = append(result.Conflicts, Conflict{Incoming: p, Existing: b})
			continue
		}

		result.New = append(result.New, p)
	}

	if len(result.Conflicts) > 0 {
		return result, nil
	}

	bills, err := s.resolveBills(ctx, ownerID, result.New)
	if err != nil {
		return nil, err
	}

	if err := itx.CreateBills(ctx, bills); err != nil {
		return nil, fmt.Errorf("create bills: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.Imported = bills
	result.New = nil

	return result, nil
}

// ConfirmBatch creates the given bills after the operator has reviewed an
// import that reported conflicts.
func (s *Service) ConfirmBatch(ctx context.Context, ownerID uuid.UUID, year, month int, params []CreateParams) ([]*Bill, error) {
	if len(params) == 0 {
		return nil, nil
	}

	itx, err := s.repo.BeginImport(ctx, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	bills, err := s.resolveBills(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	if err := itx.CreateBills(ctx, bills); err != nil {
		return nil, fmt.Errorf("create bills: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return bills, nil
}

func (s *Service) resolveBills(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Bill, error) {
	bills := make([]*Bill, len(params))

	for i, p := range params {
		unitID, err := s.tenants.UnitForTenant(ctx, ownerID, p.TenantID)
		if err != nil {
			return nil, fmt.Errorf("resolving tenant unit: %w", err)
		}

		charges := Calculate(p.Charges)
		warnNegativeConsumption(charges, p.TenantID)

		bills[i] = &Bill{
			TenantID:     p.TenantID,
			UnitID:       unitID,
			OwnerID:      ownerID,
			BillingMonth: p.BillingMonth,
			BillingYear:  p.BillingYear,
			RentAmount:   p.Charges.Rent,
			ElecPrev:     p.Charges.ElecPrev,
			ElecCurr:     p.Charges.ElecCurr,
			ElecRate:     p.Charges.ElecRate,
			ElecAmount:   charges.Elec,
			WaterAmount:  p.Charges.Water,
			TotalAmount:  charges.Total,
			Status:       StatusUnpaid,
			Notes:        p.Notes,
		}
	}

	return bills, nil
}

// Negative consumption is allowed through (meter rollback corrections) but
// worth flagging in the logs.
func warnNegativeConsumption(c Charges, tenantID uuid.UUID) {
	if c.Consumption.IsNegative() {
		slog.Warn("bill has negative electricity consumption",
			"tenant_id", tenantID,
			"consumption", c.Consumption.String(),
		)
	}
}
