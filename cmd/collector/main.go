// cmd/collector/main.go
// Periodic collector: pulls telemetry batches from the upstream ORDS
// endpoint and turns each batch into a stored report.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"circuitsense/internal/analysis"
	"circuitsense/internal/config"
	mysqlrepo "circuitsense/internal/repositories/mysql"
	"circuitsense/internal/server"
	"circuitsense/internal/services"
	"circuitsense/internal/util"
	"circuitsense/pkg/db"
	"circuitsense/pkg/upstream"
)

func main() {
	cfg := config.Load()

	conn, err := db.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	if err := conn.Ping(); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}

	var agent services.Agent
	if a := services.NewAgentService(cfg); a != nil {
		agent = a
	}

	opts := analysis.Options{
		TolPerc:    cfg.Analysis.TolPerc,
		ZThreshold: cfg.Analysis.ZThreshold,
	}
	svc := services.NewReportService(&mysqlrepo.ReportRepo{DB: conn}, agent, nil, util.RealClock{}, opts)

	client := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSec)*time.Second)
	interval := time.Duration(cfg.Upstream.IntervalSec) * time.Second

	// health endpoint so orchestrators can probe the process
	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("collector health on %s", addr)
		if err := http.ListenAndServe(addr, server.NewMux()); err != nil {
			log.Printf("[ERROR] health server: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	log.Printf("collector polling %s every %s", cfg.Upstream.BaseURL, interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	collectOnce(ctx, client, svc)
	for {
		select {
		case <-ctx.Done():
			log.Println("collector stopped")
			return
		case <-ticker.C:
			collectOnce(ctx, client, svc)
		}
	}
}

func collectOnce(ctx context.Context, client *upstream.Client, svc *services.ReportService) {
	fetchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	batch, err := client.FetchBatch(fetchCtx)
	if err != nil {
		log.Printf("[ERROR] fetch batch: %v", err)
		return
	}

	rep, err := svc.Generate(fetchCtx, batch, services.ReportMeta{})
	if err != nil {
		log.Printf("[ERROR] generate report: %v", err)
		return
	}
	log.Printf("report %s stored (period %s to %s)", rep.ID, rep.InicioReport, rep.FimReport)
}
