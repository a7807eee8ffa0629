package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentroll/internal/billing"
	"rentroll/internal/dashboard"
	"rentroll/internal/unit"
)

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bills := dashboard.NewMockBillSource(ctrl)
	units := dashboard.NewMockUnitSource(ctrl)
	svc := dashboard.NewService(bills, units)

	ownerID := uuid.New()
	year := 2024

	yearBills := []*billing.Bill{
		bill(2024, 1, billing.StatusPaid, "5750"),
		bill(2024, 2, billing.StatusUnpaid, "4200"),
	}
	unpaidBills := []*billing.Bill{
		bill(2023, 12, billing.StatusUnpaid, "3100"),
		bill(2024, 2, billing.StatusUnpaid, "4200"),
	}
	ownerUnits := []*unit.Unit{
		{ID: uuid.New(), Status: unit.StatusOccupied},
		{ID: uuid.New(), Status: unit.StatusVacant},
	}

	bills.EXPECT().
		ListBills(gomock.Any(), ownerID, gomock.Cond(func(f billing.ListFilter) bool {
			return f.Year != nil && *f.Year == year && f.Status == nil
		})).
		Return(yearBills, nil)
	units.EXPECT().
		ListUnits(gomock.Any(), ownerID, nil).
		Return(ownerUnits, nil)
	bills.EXPECT().
		ListBills(gomock.Any(), ownerID, gomock.Cond(func(f billing.ListFilter) bool {
			return f.Status != nil && *f.Status == billing.StatusUnpaid && f.Year == nil
		})).
		Return(unpaidBills, nil)

	got, err := svc.Summarize(context.Background(), ownerID, year)
	require.NoError(t, err)

	assert.True(t, got.TotalPaid.Equal(yearBills[0].TotalAmount))
	assert.True(t, got.TotalUnpaid.Equal(yearBills[1].TotalAmount))
	assert.Equal(t, 1, got.Occupied)
	assert.Equal(t, 1, got.Vacant)
	require.Len(t, got.OverdueBills, 2)
	assert.Equal(t, 2023, got.OverdueBills[0].BillingYear)
}

func TestService_Summarize_BillsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bills := dashboard.NewMockBillSource(ctrl)
	units := dashboard.NewMockUnitSource(ctrl)
	svc := dashboard.NewService(bills, units)

	bills.EXPECT().
		ListBills(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db error"))

	got, err := svc.Summarize(context.Background(), uuid.New(), 2024)
	assert.Error(t, err)
	assert.Nil(t, got)
}
