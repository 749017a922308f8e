/**
 * @description
 * HTTP handler functions for the storefront: checkout, client dashboard,
 * subscription history and cancellation. Handlers parse and validate the
 * request, call the service layer, and map domain errors to HTTP statuses.
 */
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/app"
	"github.com/roastline/commerce-service/internal/store"
	"github.com/roastline/commerce-service/internal/validation"
)

// Handler holds the application services that handlers interact with.
type Handler struct {
	checkout      *app.CheckoutService
	subscriptions *app.SubscriptionService
	accounts      *app.AccountService
	auth          *app.AuthService
	profile       *app.ProfileService
	validate      *validatorv10.Validate
}

// NewHandler creates a new Handler with the given services.
func NewHandler(checkout *app.CheckoutService, subscriptions *app.SubscriptionService, accounts *app.AccountService, auth *app.AuthService, profile *app.ProfileService) *Handler {
	return &Handler{
		checkout:      checkout,
		subscriptions: subscriptions,
		accounts:      accounts,
		auth:          auth,
		profile:       profile,
		validate:      validation.New(),
	}
}

// handleCheckout runs the stand-in payment checkout for the authenticated
// client's cart.
func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req validation.CheckoutRequest
	if err := validation.Bind(r, h.validate, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.checkout.Checkout(r.Context(), userID, req.CartItems(), req.ShippingAddress, req.Payment)
	if err != nil {
		respondWithError(w, checkoutStatus(err), err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrUnresolvedProduct):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleDashboard returns the client landing view.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	dashboard, err := h.subscriptions.GetDashboard(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}

// handleListSubscriptions returns the client's subscriptions with derived
// status.
func (h *Handler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	views, err := h.subscriptions.ListByClient(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, views)
}

// handleListOrders returns the client's order history.
func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.subscriptions.ListOrders(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

// handleCancelSubscription cancels one of the client's subscriptions.
func (h *Handler) handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	subscriptionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, errors.New("invalid subscription id"))
		return
	}

	view, err := h.subscriptions.Cancel(r.Context(), userID, subscriptionID)
	if err != nil {
		if errors.Is(err, store.ErrSubscriptionNotFound) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes a JSON error body.
func respondWithError(w http.ResponseWriter, code int, err error) {
	respondWithJSON(w, code, map[string]string{"error": err.Error()})
}
