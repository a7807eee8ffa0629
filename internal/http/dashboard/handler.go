package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"rentroll/internal/auth"
	"rentroll/internal/billing"
	"rentroll/internal/dashboard"
	"rentroll/internal/http/respond"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type overdueBillResponse struct {
	ID           string          `json:"id"`
	TenantName   string          `json:"tenant_name"`
	UnitNumber   string          `json:"unit_number"`
	BuildingName string          `json:"building_name"`
	BillingMonth int             `json:"billing_month"`
	BillingYear  int             `json:"billing_year"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

type summaryResponse struct {
	Year          int                     `json:"year"`
	MonthlyIncome map[int]decimal.Decimal `json:"monthly_income"`
	TotalPaid     decimal.Decimal         `json:"total_paid"`
	TotalUnpaid   decimal.Decimal         `json:"total_unpaid"`
	Occupied      int                     `json:"occupied"`
	Vacant        int                     `json:"vacant"`
	OverdueBills  []overdueBillResponse   `json:"overdue_bills"`
}

func toResponse(year int, s *dashboard.Summary) summaryResponse {
	overdue := make([]overdueBillResponse, len(s.OverdueBills))
	for i, b := range s.OverdueBills {
		overdue[i] = toOverdueResponse(b)
	}

	return summaryResponse{
		Year:          year,
		MonthlyIncome: s.MonthlyIncome,
		TotalPaid:     s.TotalPaid,
		TotalUnpaid:   s.TotalUnpaid,
		Occupied:      s.Occupied,
		Vacant:        s.Vacant,
		OverdueBills:  overdue,
	}
}

func toOverdueResponse(b *billing.Bill) overdueBillResponse {
	return overdueBillResponse{
		ID:           b.ID.String(),
		TenantName:   b.TenantName,
		UnitNumber:   b.UnitNumber,
		BuildingName: b.BuildingName,
		BillingMonth: b.BillingMonth,
		BillingYear:  b.BillingYear,
		TotalAmount:  b.TotalAmount,
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	year := time.Now().Year()

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2100 {
			respond.Error(w, http.StatusBadRequest, "year must be between 2000 and 2100")
			return
		}

		year = y
	}

	summary, err := h.svc.Summarize(r.Context(), ownerID, year)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(year, summary))
}
