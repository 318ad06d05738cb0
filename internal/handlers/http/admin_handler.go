// internal/handlers/http/admin_handler.go
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"circuitsense/internal/util"
)

func AdminListReports(w http.ResponseWriter, r *http.Request) {
	if reportSvc == nil {
		http.Error(w, "report service not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	reports, err := reportSvc.List(r.Context(), limit)
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"relatorios": reports})
}

func AdminDeleteReport(w http.ResponseWriter, r *http.Request) {
	if reportSvc == nil {
		http.Error(w, "report service not configured", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	if err := reportSvc.Delete(r.Context(), id); err != nil {
		var appErr util.AppError
		if errors.As(err, &appErr) && appErr.Code == "not_found" {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		http.Error(w, "delete error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "deleted": id})
}
