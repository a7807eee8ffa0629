package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentroll/internal/auth"
	"rentroll/internal/billing"
	"rentroll/internal/http/respond"
	"rentroll/internal/validation"
)

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/preview", h.preview)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
}

type chargeFields struct {
	RentAmount decimal.Decimal `json:"rent_amount" validate:"gte=0"`
	ElecPrev   decimal.Decimal `json:"elec_prev_reading" validate:"gte=0"`
	ElecCurr   decimal.Decimal `json:"elec_curr_reading" validate:"gte=0"`
	ElecRate   decimal.Decimal `json:"elec_rate" validate:"gte=0"`
	Water      decimal.Decimal `json:"water_amount" validate:"gte=0"`
}

func (c chargeFields) toInput() billing.ChargeInput {
	return billing.ChargeInput{
		Rent:     c.RentAmount,
		ElecPrev: c.ElecPrev,
		ElecCurr: c.ElecCurr,
		ElecRate: c.ElecRate,
		Water:    c.Water,
	}
}

type createBillRequest struct {
	TenantID     uuid.UUID `json:"tenant_id" validate:"required"`
	BillingMonth int       `json:"billing_month" validate:"gte=1,lte=12"`
	BillingYear  int       `json:"billing_year" validate:"gte=2000,lte=2100"`
	chargeFields
	Notes string `json:"notes"`
}

type updateBillRequest struct {
	BillingMonth int `json:"billing_month" validate:"gte=1,lte=12"`
	BillingYear  int `json:"billing_year" validate:"gte=2000,lte=2100"`
	chargeFields
	Notes string `json:"notes"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	filter := billing.ListFilter{}

	if s := r.URL.Query().Get("tenant_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid tenant_id")
			return
		}

		filter.TenantID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(billing.Status(s))
	}

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid year")
			return
		}

		filter.Year = new(y)
	}

	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid month")
			return
		}

		filter.Month = new(m)
	}

	bills, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bills))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	b, err := h.svc.Create(r.Context(), ownerID, billing.CreateParams{
		TenantID:     req.TenantID,
		BillingMonth: req.BillingMonth,
		BillingYear:  req.BillingYear,
		Charges:      req.toInput(),
		Notes:        req.Notes,
	})
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

// preview computes the derived charges without persisting anything. It
// runs the same calculation as create and update, so what the operator
// sees while filling the form is exactly what will be stored.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req chargeFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	charges := billing.Calculate(req.toInput())

	respond.JSON(w, http.StatusOK, previewResponse{
		Consumption: charges.Consumption,
		ElecAmount:  charges.Elec,
		TotalAmount: charges.Total,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	b, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "bill not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	b, err := h.svc.Update(r.Context(), ownerID, id, billing.UpdateParams{
		BillingMonth: req.BillingMonth,
		BillingYear:  req.BillingYear,
		Charges:      req.toInput(),
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "bill not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

type updateStatusRequest struct {
	Paid bool `json:"paid"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SetPaid(r.Context(), ownerID, id, req.Paid); err != nil {
		respond.Internal(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		respond.Internal(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
