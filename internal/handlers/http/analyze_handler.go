// internal/handlers/http/analyze_handler.go
// One endpoint per analyzer. The body is the raw telemetry payload in any of
// the accepted shapes (single object, list, dadoEnergia envelope); tuning
// knobs come from the query string.

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"circuitsense/internal/analysis"
	"circuitsense/internal/util"
)

func decodeRecords(r *http.Request) (any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, util.BadInput("invalid JSON body")
	}
	return payload, nil
}

func queryOptions(r *http.Request) analysis.Options {
	opts := analysis.Options{}
	if v := r.URL.Query().Get("tol"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.TolPerc = f
		}
	}
	if v := r.URL.Query().Get("z"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.ZThreshold = f
		}
	}
	return opts
}

func writeResult(w http.ResponseWriter, result map[string]any) {
	IncAnalyses()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func AnalyzeVoltageHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeRecords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeResult(w, analysis.AnalyzeVoltage(payload, queryOptions(r)))
}

func AnalyzeCurrentHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeRecords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeResult(w, analysis.AnalyzeCurrent(payload, queryOptions(r)))
}

func AnalyzePowerHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeRecords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeResult(w, analysis.AnalyzePower(payload, queryOptions(r)))
}

func AnalyzeDemandHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeRecords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := analysis.DemandOptions{
		Options: queryOptions(r),
		Field:   r.URL.Query().Get("field"),
		Agg:     r.URL.Query().Get("agg"),
	}
	result, err := analysis.AnalyzeDemand(payload, opts)
	if err != nil {
		var appErr util.AppError
		if errors.As(err, &appErr) && appErr.Code == "bad_input" {
			http.Error(w, appErr.Message, http.StatusBadRequest)
			return
		}
		http.Error(w, "analysis error", http.StatusInternalServerError)
		return
	}
	writeResult(w, result)
}
