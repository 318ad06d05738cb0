// internal/handlers/http/report_handler.go
// Report generation and retrieval endpoints.

package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"circuitsense/internal/services"
	"circuitsense/internal/util"
)

var reportSvc *services.ReportService

// SetReportService is called from app bootstrap.
func SetReportService(s *services.ReportService) { reportSvc = s }

func CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	if reportSvc == nil {
		http.Error(w, "report service not configured", http.StatusServiceUnavailable)
		return
	}

	payload, err := decodeRecords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	meta := services.ReportMeta{
		Cliente:  q.Get("cliente"),
		Unidade:  q.Get("unidade"),
		FileName: q.Get("nome_arquivo"),
	}

	rep, err := reportSvc.Generate(r.Context(), payload, meta)
	if err != nil {
		log.Printf("[ERROR] report generation failed: %v", err)
		http.Error(w, "report error", http.StatusInternalServerError)
		return
	}

	IncReports()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      rep.ID,
		"payload": rep.Payload,
	})
}

func GetReportHandler(w http.ResponseWriter, r *http.Request) {
	if reportSvc == nil {
		http.Error(w, "report service not configured", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	rep, err := reportSvc.GetByID(r.Context(), id)
	if err != nil {
		var appErr util.AppError
		if errors.As(err, &appErr) && appErr.Code == "not_found" {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] report fetch failed: %v", err)
		http.Error(w, "report error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}
