// Package handler exposes the JSON HTTP surface: auth, catalog, billing.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukandar/khata/internal/auth"
	"github.com/dukandar/khata/internal/metrics"
	"github.com/dukandar/khata/internal/middleware"
	"github.com/dukandar/khata/internal/service"
	"github.com/dukandar/khata/internal/storage"
)

type Handler struct {
	router  *chi.Mux
	auth    *service.AuthService
	catalog *service.CatalogService
	billing *service.BillingService
}

// New builds the router with all middleware and routes registered.
func New(authSvc *service.AuthService, catalog *service.CatalogService, billing *service.BillingService, jwtManager *auth.JWTManager) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(middleware.Logging)

	h := &Handler{
		router:  router,
		auth:    authSvc,
		catalog: catalog,
		billing: billing,
	}

	h.registerRoutes(jwtManager)
	return h
}

func (h *Handler) registerRoutes(jwtManager *auth.JWTManager) {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
	})

	h.router.Handle("/metrics", promhttp.Handler())

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		// Catalog listing keeps the legacy unauthenticated shape: 401 with
		// an empty JSON array body.
		r.With(middleware.OptionalAuth(jwtManager)).Get("/items", h.ListItems)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)

			r.Post("/items", h.AddItem)
			r.Delete("/items/{id}", h.DeleteItem)

			r.Post("/bills", h.SaveBill)
			r.Get("/bills", h.ListBills)
			r.Get("/bills/{id}", h.GetBill)
		})
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not logged in"})
	case errors.Is(err, auth.ErrUsernameExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrMissingUsername),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrMissingName),
		errors.Is(err, service.ErrMalformedCart),
		errors.Is(err, service.ErrTotalMismatch):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
