package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"rentroll/internal/auth"
)

func newIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", time.Hour)
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, newIssuer())

	repo.EXPECT().
		CreateOwner(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *auth.Owner) error {
			assert.NotEqual(t, "hunter22", o.PasswordHash, "password must be stored hashed")
			o.ID = uuid.New()
			return nil
		})

	owner, token, err := svc.Register(context.Background(), auth.RegisterParams{
		FullName: "Jane Landlord",
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.NotEmpty(t, token)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte("hunter22")))
}

func TestService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, newIssuer())

	repo.EXPECT().
		CreateOwner(gomock.Any(), gomock.Any()).
		Return(auth.ErrEmailTaken)

	owner, token, err := svc.Register(context.Background(), auth.RegisterParams{
		FullName: "Jane Landlord",
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	assert.Nil(t, owner)
	assert.Empty(t, token)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &auth.Owner{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: string(hash),
	}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *auth.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "jane@example.com",
			password: "hunter22",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetOwnerByEmail(gomock.Any(), "jane@example.com").
					Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "jane@example.com",
			password: "wrong",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetOwnerByEmail(gomock.Any(), "jane@example.com").
					Return(stored, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "nobody@example.com",
			password: "hunter22",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetOwnerByEmail(gomock.Any(), "nobody@example.com").
					Return(nil, auth.ErrNotFound)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "RepoError",
			email:    "jane@example.com",
			password: "hunter22",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().
					GetOwnerByEmail(gomock.Any(), "jane@example.com").
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := auth.NewService(repo, newIssuer())
			owner, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, owner)
				assert.Empty(t, token)

				if errors.Is(tt.wantErr, auth.ErrInvalidCredentials) {
					assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, owner.ID)
			assert.NotEmpty(t, token)
		})
	}
}
