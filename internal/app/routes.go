// internal/app/routes.go
package app

import (
	"net/http"

	"github.com/gorilla/mux"

	hh "circuitsense/internal/handlers/http"
	"circuitsense/internal/middleware"
)

// RegisterRoutes adds every HTTP route.
func RegisterRoutes(r *mux.Router) {
	// --- no prefix ---
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.ReadyHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics", hh.MetricsHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", hh.LoginHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/debug/repos", hh.ReposStatusHandler).Methods(http.MethodGet)

	// --- /api prefix ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth)

	api.HandleFunc("/analyze/tensao", hh.AnalyzeVoltageHandler).
		Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/analyze/corrente", hh.AnalyzeCurrentHandler).
		Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/analyze/potencia", hh.AnalyzePowerHandler).
		Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/analyze/demanda", hh.AnalyzeDemandHandler).
		Methods(http.MethodPost, http.MethodOptions)

	api.HandleFunc("/relatorio", hh.CreateReportHandler).
		Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/relatorio/{id}", hh.GetReportHandler).
		Methods(http.MethodGet, http.MethodOptions)

	// Preflight catch-all
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(hh.PreflightHandler)

	// Admin (JWT protected)
	adminJWT := r.PathPrefix("/admin").Subrouter()
	adminJWT.Use(middleware.AdminJWTAuth)
	adminJWT.HandleFunc("/relatorios", hh.AdminListReports).Methods(http.MethodGet)
	adminJWT.HandleFunc("/relatorios/{id}", hh.AdminDeleteReport).Methods(http.MethodDelete)
}
