// internal/handlers/http/metrics_handler.go
// Simple Prometheus-format metrics handler.

package http

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	analysesTotal uint64
	reportsTotal  uint64
)

func IncAnalyses() { atomic.AddUint64(&analysesTotal, 1) }
func IncReports()  { atomic.AddUint64(&reportsTotal, 1) }

func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP app_up 1 if the app is up\n# TYPE app_up gauge\napp_up 1\n")
	fmt.Fprintf(w, "# HELP analyses_total number of analysis requests served\n# TYPE analyses_total counter\nanalyses_total %d\n", atomic.LoadUint64(&analysesTotal))
	fmt.Fprintf(w, "# HELP reports_total number of reports generated\n# TYPE reports_total counter\nreports_total %d\n", atomic.LoadUint64(&reportsTotal))
}
