package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/roastline/commerce-service/internal/app"
	"github.com/roastline/commerce-service/internal/store"
	"github.com/roastline/commerce-service/internal/validation"
)

// handleRegister creates a client account and triggers the activation mail.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req validation.RegisterRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	_, err := h.auth.Register(r.Context(), app.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "Account created. Check your email for activation.",
	})
}

// handleActivate flips the account behind the activation token to active.
func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Activate(r.Context(), chi.URLParam(r, "token")); err != nil {
		if errors.Is(err, store.ErrTokenInvalid) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Account activated!"})
}

// handleLogin authenticates and returns a session token.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, err)
		case errors.Is(err, app.ErrAccountInactive):
			respondWithError(w, http.StatusForbidden, err)
		case errors.Is(err, app.ErrTooManyAttempts):
			respondWithError(w, http.StatusTooManyRequests, err)
		default:
			respondWithError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

// handleForgotPassword stores a reset token and triggers the reset mail. The
// response does not reveal whether the email exists.
func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req validation.ForgotPasswordRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil && !errors.Is(err, store.ErrClientNotFound) {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset email sent!"})
}

// handleResetPassword swaps the password behind a valid reset token.
func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req validation.ResetPasswordRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password); err != nil {
		if errors.Is(err, store.ErrTokenInvalid) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully!"})
}

// handleMe returns the authenticated account's summary.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	account, err := h.auth.CurrentAccount(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"user": account})
}
