// internal/app/app.go
package app

import (
	"log"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"circuitsense/internal/analysis"
	"circuitsense/internal/config"
	hh "circuitsense/internal/handlers/http"
	"circuitsense/internal/middleware"
	mysqlrepo "circuitsense/internal/repositories/mysql"
	"circuitsense/internal/services"
	"circuitsense/internal/util"
	"circuitsense/pkg/db"
)

// App holds the main router.
type App struct {
	Router *mux.Router
	Config *config.Config
}

// New builds the app: config, DB, services, routes.
func New() *App {
	cfg := config.Load()

	r := mux.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)

	// === init DB ===
	conn, err := db.NewMySQL(cfg)
	if err != nil {
		log.Printf("[WARN] open mysql failed: %v", err)
		conn = nil
	}

	if conn != nil {
		// retry ping so the app survives a DB container that is still booting
		var pingErr error
		for i := 0; i < 20; i++ {
			pingErr = conn.Ping()
			if pingErr == nil {
				break
			}
			log.Printf("[WARN] ping mysql failed (try %d): %v", i+1, pingErr)
			time.Sleep(3 * time.Second)
		}
		if pingErr != nil {
			log.Printf("[ERROR] mysql not ready after retries: %v", pingErr)
			conn = nil
		}
	}

	// === services wiring ===
	opts := analysis.Options{
		TolPerc:    cfg.Analysis.TolPerc,
		ZThreshold: cfg.Analysis.ZThreshold,
	}

	var narrator services.Narrator
	if n, err := services.NewNarrativeService(cfg); err != nil {
		log.Printf("[WARN] narrative service disabled: %v", err)
	} else {
		narrator = n
	}

	var agent services.Agent
	if a := services.NewAgentService(cfg); a != nil {
		agent = a
	} else {
		log.Printf("[WARN] agent webhook URL empty; report forwarding disabled")
	}

	if conn != nil {
		repo := &mysqlrepo.ReportRepo{DB: conn}
		svc := services.NewReportService(repo, agent, narrator, util.RealClock{}, opts)
		hh.SetReportService(svc)
	} else {
		log.Printf("[WARN] no database; report endpoints disabled")
	}

	RegisterRoutes(r)

	return &App{Router: r, Config: cfg}
}

// Run starts the HTTP server.
func (a *App) Run(addr string) {
	log.Printf("server running on %s", addr)
	if err := http.ListenAndServe(addr, a.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
