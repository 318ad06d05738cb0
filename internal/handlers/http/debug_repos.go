// internal/handlers/http/debug_repos.go
package http

import (
	"encoding/json"
	"net/http"
)

func ReposStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"report_service": reportSvc != nil,
	}
	if reportSvc != nil {
		status["agent"] = reportSvc.HasAgent()
		status["narrator"] = reportSvc.HasNarrator()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}
