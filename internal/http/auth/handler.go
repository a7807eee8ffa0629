package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rentroll/internal/auth"
	"rentroll/internal/http/respond"
	"rentroll/internal/validation"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

type registerRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ownerResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Owner ownerResponse `json:"owner"`
	Token string        `json:"token"`
}

func toAuthResponse(o *auth.Owner, token string) authResponse {
	return authResponse{
		Owner: ownerResponse{
			ID:        o.ID,
			FullName:  o.FullName,
			Email:     o.Email,
			CreatedAt: o.CreatedAt,
		},
		Token: token,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	owner, token, err := h.svc.Register(r.Context(), auth.RegisterParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respond.Error(w, http.StatusConflict, "email already registered")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, toAuthResponse(owner, token))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	owner, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}

		respond.Internal(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toAuthResponse(owner, token))
}
