package tenant

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rentroll/internal/auth"
	"rentroll/internal/http/respond"
	"rentroll/internal/tenant"
	"rentroll/internal/validation"
)

type Handler struct {
	svc *tenant.Service
}

func NewHandler(svc *tenant.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type tenantRequest struct {
	UnitID      uuid.UUID     `json:"unit_id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email" validate:"omitempty,email"`
	MoveInDate  time.Time     `json:"move_in_date" validate:"required"`
	MoveOutDate *time.Time    `json:"move_out_date"`
	Status      tenant.Status `json:"status" validate:"required,oneof=active inactive"`
}

type tenantResponse struct {
	ID           uuid.UUID     `json:"id"`
	UnitID       uuid.UUID     `json:"unit_id"`
	UnitNumber   string        `json:"unit_number,omitempty"`
	BuildingID   uuid.UUID     `json:"building_id"`
	BuildingName string        `json:"building_name,omitempty"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone,omitempty"`
	Email        string        `json:"email,omitempty"`
	MoveInDate   time.Time     `json:"move_in_date"`
	MoveOutDate  *time.Time    `json:"move_out_date,omitempty"`
	Status       tenant.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

func toResponse(t *tenant.Tenant) tenantResponse {
	return tenantResponse{
		ID:           t.ID,
		UnitID:       t.UnitID,
		UnitNumber:   t.UnitNumber,
		BuildingID:   t.BuildingID,
		BuildingName: t.BuildingName,
		Name:         t.Name,
		Phone:        t.Phone,
		Email:        t.Email,
		MoveInDate:   t.MoveInDate,
		MoveOutDate:  t.MoveOutDate,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
	}
}

func (req tenantRequest) toParams() tenant.Params {
	return tenant.Params{
		UnitID:      req.UnitID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		MoveInDate:  req.MoveInDate,
		MoveOutDate: req.MoveOutDate,
		Status:      req.Status,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	filter := tenant.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(tenant.Status(s))
	}

	if s := r.URL.Query().Get("building_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid building_id")
			return
		}

		filter.BuildingID = &id
	}

	tenants, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	resp := make([]tenantResponse, len(tenants))
	for i, t := range tenants {
		resp[i] = toResponse(t)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	var req tenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	t, err := h.svc.Create(r.Context(), ownerID, req.toParams())
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(t))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "tenant not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req tenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	t, err := h.svc.Update(r.Context(), ownerID, id, req.toParams())
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "tenant not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "tenant not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
