package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentroll/internal/billing"
)

type billResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	TenantName   string          `json:"tenant_name,omitempty"`
	UnitID       uuid.UUID       `json:"unit_id"`
	UnitNumber   string          `json:"unit_number,omitempty"`
	BuildingName string          `json:"building_name,omitempty"`
	BillingMonth int             `json:"billing_month"`
	BillingYear  int             `json:"billing_year"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	ElecPrev     decimal.Decimal `json:"elec_prev_reading"`
	ElecCurr     decimal.Decimal `json:"elec_curr_reading"`
	ElecRate     decimal.Decimal `json:"elec_rate"`
	ElecAmount   decimal.Decimal `json:"elec_amount"`
	WaterAmount  decimal.Decimal `json:"water_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       billing.Status  `json:"status"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(b *billing.Bill) billResponse {
	return billResponse{
		ID:           b.ID,
		TenantID:     b.TenantID,
		TenantName:   b.TenantName,
		UnitID:       b.UnitID,
		UnitNumber:   b.UnitNumber,
		BuildingName: b.BuildingName,
		BillingMonth: b.BillingMonth,
		BillingYear:  b.BillingYear,
		RentAmount:   b.RentAmount,
		ElecPrev:     b.ElecPrev,
		ElecCurr:     b.ElecCurr,
		ElecRate:     b.ElecRate,
		ElecAmount:   b.ElecAmount,
		WaterAmount:  b.WaterAmount,
		TotalAmount:  b.TotalAmount,
		Status:       b.Status,
		PaidAt:       b.PaidAt,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toResponseList(bills []*billing.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}

type previewResponse struct {
	Consumption decimal.Decimal `json:"consumption"`
	ElecAmount  decimal.Decimal `json:"elec_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
