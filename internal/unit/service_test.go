package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentroll/internal/unit"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    unit.Params
		setupMock func(m *unit.MockRepository)
		wantErr   bool
	}

	floor := 3

	tests := []testCase{
		{
			name: "Success",
			params: unit.Params{
				UnitNumber: "301",
				Floor:      &floor,
				RentAmount: decimal.RequireFromString("5000"),
				Status:     unit.StatusVacant,
			},
			setupMock: func(m *unit.MockRepository) {
				m.EXPECT().
					CreateUnit(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *unit.Unit) error {
						u.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: unit.Params{UnitNumber: "301"},
			setupMock: func(m *unit.MockRepository) {
				m.EXPECT().
					CreateUnit(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := unit.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			ownerID := uuid.New()
			buildingID := uuid.New()
			svc := unit.NewService(repo)
			got, err := svc.Create(context.Background(), ownerID, buildingID, tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, buildingID, got.BuildingID)
			assert.Equal(t, ownerID, got.OwnerID)
			assert.Equal(t, tt.params.UnitNumber, got.UnitNumber)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := unit.NewMockRepository(ctrl)
	svc := unit.NewService(repo)

	ownerID := uuid.New()
	id := uuid.New()

	repo.EXPECT().
		GetUnit(gomock.Any(), ownerID, id).
		Return(&unit.Unit{
			ID:         id,
			OwnerID:    ownerID,
			UnitNumber: "301",
			RentAmount: decimal.RequireFromString("5000"),
			Status:     unit.StatusVacant,
		}, nil)
	repo.EXPECT().
		UpdateUnit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *unit.Unit) error {
			assert.True(t, u.RentAmount.Equal(decimal.RequireFromString("5500")))
			assert.Equal(t, unit.StatusOccupied, u.Status)
			return nil
		})

	got, err := svc.Update(context.Background(), ownerID, id, unit.Params{
		UnitNumber: "301",
		RentAmount: decimal.RequireFromString("5500"),
		Status:     unit.StatusOccupied,
	})
	assert.NoError(t, err)
	assert.Equal(t, unit.StatusOccupied, got.Status)
}

func TestService_List_FilterByBuilding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := unit.NewMockRepository(ctrl)
	svc := unit.NewService(repo)

	ownerID := uuid.New()
	buildingID := uuid.New()

	repo.EXPECT().
		ListUnits(gomock.Any(), ownerID, &buildingID).
		Return([]*unit.Unit{{ID: uuid.New(), BuildingID: buildingID}}, nil)

	got, err := svc.List(context.Background(), ownerID, &buildingID)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := unit.NewMockRepository(ctrl)
	svc := unit.NewService(repo)

	repo.EXPECT().
		GetUnit(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, unit.ErrNotFound)

	got, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, unit.ErrNotFound)
	assert.Nil(t, got)
}
