package unit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentroll/internal/auth"
	"rentroll/internal/http/respond"
	"rentroll/internal/unit"
	"rentroll/internal/validation"
)

type Handler struct {
	svc *unit.Service
}

func NewHandler(svc *unit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// BuildingRoutes mounts the nested creation route under a building.
func (h *Handler) BuildingRoutes(r chi.Router) {
	r.Post("/{buildingID}/units", h.create)
}

type unitRequest struct {
	UnitNumber string          `json:"unit_number" validate:"required"`
	Floor      *int            `json:"floor"`
	RentAmount decimal.Decimal `json:"rent_amount" validate:"gte=0"`
	Status     unit.Status     `json:"status" validate:"required,oneof=occupied vacant"`
}

type unitResponse struct {
	ID           uuid.UUID       `json:"id"`
	BuildingID   uuid.UUID       `json:"building_id"`
	BuildingName string          `json:"building_name,omitempty"`
	UnitNumber   string          `json:"unit_number"`
	Floor        *int            `json:"floor,omitempty"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	Status       unit.Status     `json:"status"`
}

func toResponse(u *unit.Unit) unitResponse {
	return unitResponse{
		ID:           u.ID,
		BuildingID:   u.BuildingID,
		BuildingName: u.BuildingName,
		UnitNumber:   u.UnitNumber,
		Floor:        u.Floor,
		RentAmount:   u.RentAmount,
		Status:       u.Status,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	var buildingID *uuid.UUID

	if s := r.URL.Query().Get("building_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid building_id")
			return
		}

		buildingID = &id
	}

	units, err := h.svc.List(r.Context(), ownerID, buildingID)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	resp := make([]unitResponse, len(units))
	for i, u := range units {
		resp[i] = toResponse(u)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	buildingID, err := uuid.Parse(chi.URLParam(r, "buildingID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid building id")
		return
	}

	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	u, err := h.svc.Create(r.Context(), ownerID, buildingID, unit.Params{
		UnitNumber: req.UnitNumber,
		Floor:      req.Floor,
		RentAmount: req.RentAmount,
		Status:     req.Status,
	})
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(u))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	u, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, unit.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "unit not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	u, err := h.svc.Update(r.Context(), ownerID, id, unit.Params{
		UnitNumber: req.UnitNumber,
		Floor:      req.Floor,
		RentAmount: req.RentAmount,
		Status:     req.Status,
	})
	if err != nil {
		if errors.Is(err, unit.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "unit not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
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
