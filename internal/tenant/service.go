package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository writes tenant rows together with the unit status flips that
// accompany them. CreateTenant marks the unit occupied and DeleteTenant
// marks it vacant, each in a single database transaction so the unit flag
// cannot be left pointing at a tenant that no longer exists.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tenant
type Repository interface {
	CreateTenant(ctx context.Context, t *Tenant) error
	GetTenant(ctx context.Context, ownerID, id uuid.UUID) (*Tenant, error)
	UpdateTenant(ctx context.Context, t *Tenant) error
	ListTenants(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Tenant, error)
	DeleteTenant(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	UnitID      uuid.UUID
	Name        string
	Phone       string
	Email       string
	MoveInDate  time.Time
	MoveOutDate *time.Time
	Status      Status
}

type ListFilter struct {
	Status     *Status
	BuildingID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params Params) (*Tenant, error) {
	t := &Tenant{
		UnitID:      params.UnitID,
		OwnerID:     ownerID,
		Name:        params.Name,
		Phone:       params.Phone,
		Email:       params.Email,
		MoveInDate:  params.MoveInDate,
		MoveOutDate: params.MoveOutDate,
		Status:      params.Status,
	}
	if err := s.repo.CreateTenant(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params Params) (*Tenant, error) {
	t, err := s.repo.GetTenant(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	t.UnitID = params.UnitID
	t.Name = params.Name
	t.Phone = params.Phone
	t.Email = params.Email
	t.MoveInDate = params.MoveInDate
	t.MoveOutDate = params.MoveOutDate
	t.Status = params.Status

	if err := s.repo.UpdateTenant(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Tenant, error) {
	return s.repo.GetTenant(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Tenant, error) {
	return s.repo.ListTenants(ctx, ownerID, filter)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteTenant(ctx, ownerID, id)
}
