package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/app"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
	"github.com/roastline/commerce-service/internal/validation"
)

// handleAdminOrders lists all orders with customer summaries.
func (h *Handler) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.accounts.ListOrders(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

// handleAdminSubscriptions lists all subscriptions with coffee and customer
// summaries.
func (h *Handler) handleAdminSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.accounts.ListSubscriptions(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, subs)
}

// handleAdminListUsers lists staff users with search/sort/role filters from
// query parameters.
func (h *Handler) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	opts := app.UserListOptions{
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
		Role:   r.URL.Query().Get("role"),
	}

	users, err := h.accounts.ListUsers(r.Context(), opts)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// handleAdminGetUser returns one staff user.
func (h *Handler) handleAdminGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	user, err := h.accounts.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// handleAdminCreateUser creates a staff user.
func (h *Handler) handleAdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req validation.UserRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	user := domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		IsActive:  isActive,
	}

	created, err := h.accounts.CreateUser(r.Context(), user, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingCredentials):
			respondWithError(w, http.StatusBadRequest, err)
		case errors.Is(err, store.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, err)
		default:
			respondWithError(w, http.StatusInternalServerError, err)
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// handleAdminUpdateUser updates a staff user's profile fields.
func (h *Handler) handleAdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var req validation.UserRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	user := domain.User{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		IsActive:  isActive,
	}

	updated, err := h.accounts.UpdateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			respondWithError(w, http.StatusNotFound, err)
		case errors.Is(err, store.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, err)
		default:
			respondWithError(w, http.StatusInternalServerError, err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// handleAdminDeleteUser removes a staff user.
func (h *Handler) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	if err := h.accounts.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
