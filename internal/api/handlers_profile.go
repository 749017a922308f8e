package api

import (
	"errors"
	"net/http"

	"github.com/roastline/commerce-service/internal/app"
	"github.com/roastline/commerce-service/internal/store"
	"github.com/roastline/commerce-service/internal/validation"
)

// handleGetProfile returns the authenticated client's profile.
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.profile.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// handleUpdateProfile changes the client's name and email.
func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req validation.UpdateProfileRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	profile, err := h.profile.UpdateProfile(r.Context(), userID, app.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrClientNotFound):
			respondWithError(w, http.StatusNotFound, err)
		case errors.Is(err, store.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, err)
		default:
			respondWithError(w, http.StatusInternalServerError, err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "data": profile})
}

// handleUpdatePassword swaps the client's password after checking the current
// one.
func (h *Handler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req validation.UpdatePasswordRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.profile.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, err)
		case errors.Is(err, store.ErrClientNotFound):
			respondWithError(w, http.StatusNotFound, err)
		default:
			respondWithError(w, http.StatusInternalServerError, err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// handleDeleteAccount removes the authenticated client's account.
func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.profile.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
