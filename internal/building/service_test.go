package building_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentroll/internal/building"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    building.Params
		setupMock func(m *building.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: building.Params{
				Name:    "Riverside House",
				Address: "12 Quay Street",
			},
			setupMock: func(m *building.MockRepository) {
				m.EXPECT().
					CreateBuilding(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *building.Building) error {
						b.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: building.Params{Name: "Riverside House"},
			setupMock: func(m *building.MockRepository) {
				m.EXPECT().
					CreateBuilding(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := building.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			ownerID := uuid.New()
			svc := building.NewService(repo)
			got, err := svc.Create(context.Background(), ownerID, tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, ownerID, got.OwnerID)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := building.NewMockRepository(ctrl)
	svc := building.NewService(repo)

	ownerID := uuid.New()
	id := uuid.New()

	repo.EXPECT().
		GetBuilding(gomock.Any(), ownerID, id).
		Return(&building.Building{ID: id, OwnerID: ownerID, Name: "Old Name"}, nil)
	repo.EXPECT().
		UpdateBuilding(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *building.Building) error {
			assert.Equal(t, "New Name", b.Name)
			assert.Equal(t, "1 Main Street", b.Address)
			return nil
		})

	got, err := svc.Update(context.Background(), ownerID, id, building.Params{
		Name:    "New Name",
		Address: "1 Main Street",
	})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := building.NewMockRepository(ctrl)
	svc := building.NewService(repo)

	repo.EXPECT().
		GetBuilding(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, building.ErrNotFound)

	got, err := svc.Update(context.Background(), uuid.New(), uuid.New(), building.Params{})
	assert.ErrorIs(t, err, building.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := building.NewMockRepository(ctrl)
	svc := building.NewService(repo)

	ownerID := uuid.New()

	repo.EXPECT().
		ListBuildings(gomock.Any(), ownerID).
		Return([]*building.Building{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	got, err := svc.List(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := building.NewMockRepository(ctrl)
	svc := building.NewService(repo)

	ownerID := uuid.New()
	id := uuid.New()

	repo.EXPECT().DeleteBuilding(gomock.Any(), ownerID, id).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), ownerID, id))
}
