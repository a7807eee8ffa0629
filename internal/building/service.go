package building

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=building
type Repository interface {
	CreateBuilding(ctx context.Context, b *Building) error
	GetBuilding(ctx context.Context, ownerID, id uuid.UUID) (*Building, error)
	UpdateBuilding(ctx context.Context, b *Building) error
	ListBuildings(ctx context.Context, ownerID uuid.UUID) ([]*Building, error)
	DeleteBuilding(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name    string
	Address string
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params Params) (*Building, error) {
	b := &Building{
		OwnerID: ownerID,
		Name:    params.Name,
		Address: params.Address,
	}
	if err := s.repo.CreateBuilding(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params Params) (*Building, error) {
	b, err := s.repo.GetBuilding(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	b.Name = params.Name
	b.Address = params.Address

	if err := s.repo.UpdateBuilding(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Building, error) {
	return s.repo.GetBuilding(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Building, error) {
	return s.repo.ListBuildings(ctx, ownerID)
}

// Delete removes a building. Units, tenants and bills under it are removed
// by the schema's ON DELETE CASCADE.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteBuilding(ctx, ownerID, id)
}
