package handler

import (
	"net/http"

	"github.com/Dan9191/rm-dashboard/internal/config"
	"github.com/Dan9191/rm-dashboard/internal/middleware"
	"github.com/Dan9191/rm-dashboard/internal/telemetry"
	"github.com/gorilla/mux"
)

// NewRouter wires public, page and API routes
func NewRouter(h *Handler, cfg *config.Config, metrics *telemetry.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(h.log, metrics))

	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/login", h.LoginPage).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg, Unauthorized))
	api.HandleFunc("/clients", h.Clients).Methods("GET")
	api.HandleFunc("/clients/{name}", h.Client).Methods("GET")
	api.HandleFunc("/analyze", h.Analyze).Methods("POST")
	api.HandleFunc("/analyze/email", h.EmailAnalysis).Methods("POST")
	api.HandleFunc("/reference-rate", h.ReferenceRate).Methods("GET")

	// Protected dashboard page
	page := r.PathPrefix("/").Subrouter()
	page.Use(middleware.AuthMiddleware(cfg, RedirectToLogin))
	page.Handle("/", http.HandlerFunc(h.Dashboard)).Methods("GET")

	return r
}
