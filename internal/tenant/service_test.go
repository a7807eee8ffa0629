package tenant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentroll/internal/tenant"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    tenant.Params
		setupMock func(m *tenant.MockRepository)
		wantErr   bool
	}

	unitID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			params: tenant.Params{
				UnitID:     unitID,
				Name:       "Somsak P.",
				Phone:      "081-234-5678",
				MoveInDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				Status:     tenant.StatusActive,
			},
			setupMock: func(m *tenant.MockRepository) {
				m.EXPECT().
					CreateTenant(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tn *tenant.Tenant) error {
						tn.ID = uuid.New()
						tn.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: tenant.Params{UnitID: unitID, Name: "Somsak P."},
			setupMock: func(m *tenant.MockRepository) {
				m.EXPECT().
					CreateTenant(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tenant.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			ownerID := uuid.New()
			svc := tenant.NewService(repo)
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
			assert.Equal(t, unitID, got.UnitID)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	svc := tenant.NewService(repo)

	ownerID := uuid.New()
	id := uuid.New()
	moveOut := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		GetTenant(gomock.Any(), ownerID, id).
		Return(&tenant.Tenant{ID: id, OwnerID: ownerID, Status: tenant.StatusActive}, nil)
	repo.EXPECT().
		UpdateTenant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tn *tenant.Tenant) error {
			assert.Equal(t, tenant.StatusInactive, tn.Status)
			assert.Equal(t, &moveOut, tn.MoveOutDate)
			return nil
		})

	got, err := svc.Update(context.Background(), ownerID, id, tenant.Params{
		Name:        "Somsak P.",
		MoveOutDate: &moveOut,
		Status:      tenant.StatusInactive,
	})
	assert.NoError(t, err)
	assert.Equal(t, tenant.StatusInactive, got.Status)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	svc := tenant.NewService(repo)

	ownerID := uuid.New()
	active := tenant.StatusActive
	filter := tenant.ListFilter{Status: &active}

	repo.EXPECT().
		ListTenants(gomock.Any(), ownerID, filter).
		Return([]*tenant.Tenant{{ID: uuid.New()}}, nil)

	got, err := svc.List(context.Background(), ownerID, filter)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	svc := tenant.NewService(repo)

	ownerID := uuid.New()
	id := uuid.New()

	repo.EXPECT().DeleteTenant(gomock.Any(), ownerID, id).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), ownerID, id))
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	svc := tenant.NewService(repo)

	repo.EXPECT().
		DeleteTenant(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(tenant.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), uuid.New()), tenant.ErrNotFound)
}
