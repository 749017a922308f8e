/**
 * @description
 * HTTP router setup using go-chi/chi. Defines the API routes, applies
 * middleware for logging, CORS and authentication, and maps routes to their
 * handler functions.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/roastline/commerce-service/internal/domain"
)

// NewRouter creates a new Chi router and registers the commerce routes.
func NewRouter(h *Handler, jwtSecret, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Commerce service is healthy"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Post("/auth/register", h.handleRegister)
		r.Get("/auth/activate/{token}", h.handleActivate)
		r.Post("/auth/login", h.handleLogin)
		r.Post("/auth/forgot-password", h.handleForgotPassword)
		r.Post("/auth/reset-password/{token}", h.handleResetPassword)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			r.Get("/auth/me", h.handleMe)
			r.Post("/checkout", h.handleCheckout)

			r.Get("/client/profile", h.handleGetProfile)
			r.Put("/client/profile", h.handleUpdateProfile)
			r.Put("/client/password", h.handleUpdatePassword)
			r.Delete("/client/account", h.handleDeleteAccount)

			r.Get("/client/dashboard", h.handleDashboard)
			r.Get("/client/subscriptions", h.handleListSubscriptions)
			r.Post("/client/subscriptions/{id}/cancel", h.handleCancelSubscription)
			r.Get("/client/orders", h.handleListOrders)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(domain.RoleAdmin))

				r.Get("/admin/orders", h.handleAdminOrders)
				r.Get("/admin/subscriptions", h.handleAdminSubscriptions)
				r.Get("/admin/users", h.handleAdminListUsers)
				r.Post("/admin/users", h.handleAdminCreateUser)
				r.Get("/admin/users/{id}", h.handleAdminGetUser)
				r.Put("/admin/users/{id}", h.handleAdminUpdateUser)
				r.Delete("/admin/users/{id}", h.handleAdminDeleteUser)
			})
		})
	})

	return r
}
