package building

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rentroll/internal/auth"
	"rentroll/internal/building"
	"rentroll/internal/http/respond"
	"rentroll/internal/validation"
)

type Handler struct {
	svc *building.Service
}

func NewHandler(svc *building.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type buildingRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type buildingResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(b *building.Building) buildingResponse {
	return buildingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	buildings, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	resp := make([]buildingResponse, len(buildings))
	for i, b := range buildings {
		resp[i] = toResponse(b)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	var req buildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	b, err := h.svc.Create(r.Context(), ownerID, building.Params{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
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
		if errors.Is(err, building.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "building not found")
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

	var req buildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	b, err := h.svc.Update(r.Context(), ownerID, id, building.Params{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, building.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "building not found")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
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
