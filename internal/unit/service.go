package unit

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=unit
type Repository interface {
	CreateUnit(ctx context.Context, u *Unit) error
	GetUnit(ctx context.Context, ownerID, id uuid.UUID) (*Unit, error)
	UpdateUnit(ctx context.Context, u *Unit) error
	ListUnits(ctx context.Context, ownerID uuid.UUID, buildingID *uuid.UUID) ([]*Unit, error)
	DeleteUnit(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	UnitNumber string
	Floor      *int
	RentAmount decimal.Decimal
	Status     Status
}

func (s *Service) Create(ctx context.Context, ownerID, buildingID uuid.UUID, params Params) (*Unit, error) {
	u := &Unit{
		BuildingID: buildingID,
		OwnerID:    ownerID,
		UnitNumber: params.UnitNumber,
		Floor:      params.Floor,
		RentAmount: params.RentAmount,
		Status:     params.Status,
	}
	if err := s.repo.CreateUnit(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params Params) (*Unit, error) {
	u, err := s.repo.GetUnit(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	u.UnitNumber = params.UnitNumber
	u.Floor = params.Floor
	u.RentAmount = params.RentAmount
	u.Status = params.Status

	if err := s.repo.UpdateUnit(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Unit, error) {
	return s.repo.GetUnit(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, buildingID *uuid.UUID) ([]*Unit, error) {
	return s.repo.ListUnits(ctx, ownerID, buildingID)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteUnit(ctx, ownerID, id)
}
