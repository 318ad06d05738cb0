// internal/handlers/http/health_handler.go
// Simple liveness/readiness handlers.

package http

import (
	"encoding/json"
	"net/http"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": "ok",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func ReadyHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":       "ready",
		"report_store": reportSvc != nil,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
