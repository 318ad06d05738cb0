// internal/services/report_service.go
// Report orchestration: runs the four analyzers over one telemetry batch,
// assembles the report document, stores it and forwards it to the document
// agent.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"circuitsense/internal/analysis"
	"circuitsense/internal/util"
)

// Report is the stored unit: metadata plus the assembled analysis document.
type Report struct {
	ID           string         `json:"id"`
	FileName     string         `json:"nome_arquivo"`
	Cliente      string         `json:"cliente"`
	Unidade      string         `json:"unidade"`
	InicioReport string         `json:"inicioReport"`
	FimReport    string         `json:"fimReport"`
	Payload      map[string]any `json:"payload"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ReportStore is the persistence contract, implemented by the MySQL repo.
type ReportStore interface {
	Insert(ctx context.Context, rep *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, limit int) ([]Report, error)
	Delete(ctx context.Context, id string) error
}

// Agent forwards a finished report to the document webhook.
type Agent interface {
	Forward(ctx context.Context, rep *Report) error
}

// Narrator produces the executive summary text for the report front page.
type Narrator interface {
	Summarize(ctx context.Context, payload map[string]any) (string, error)
}

type ReportMeta struct {
	Cliente  string
	Unidade  string
	FileName string
}

type ReportService struct {
	store    ReportStore
	agent    Agent
	narrator Narrator
	clock    util.Clock
	opts     analysis.Options
}

func NewReportService(store ReportStore, agent Agent, narrator Narrator, clock util.Clock, opts analysis.Options) *ReportService {
	if clock == nil {
		clock = util.RealClock{}
	}
	return &ReportService{store: store, agent: agent, narrator: narrator, clock: clock, opts: opts}
}

func (s *ReportService) HasAgent() bool    { return s.agent != nil }
func (s *ReportService) HasNarrator() bool { return s.narrator != nil }

// Generate runs every analyzer over the batch and persists the result. The
// agent forward and the narrative are best-effort; their failure never loses
// the stored report.
func (s *ReportService) Generate(ctx context.Context, records any, meta ReportMeta) (*Report, error) {
	if s.store == nil {
		return nil, util.Internal("report store not configured")
	}

	tensao := analysis.AnalyzeVoltage(records, s.opts)
	corrente := analysis.AnalyzeCurrent(records, s.opts)
	potencia := analysis.AnalyzePower(records, s.opts)
	demanda, err := analysis.AnalyzeDemand(records, analysis.DemandOptions{Options: s.opts})
	if err != nil {
		return nil, fmt.Errorf("demand analysis: %w", err)
	}

	inicio, fim := reportPeriod(tensao)

	payload := map[string]any{
		"inicioReport": inicio,
		"fimReport":    fim,
		"cliente":      meta.Cliente,
		"unidade":      meta.Unidade,
		"analise": map[string]any{
			"tensao":   tensao,
			"corrente": corrente,
			"potencia": potencia,
			"demanda":  demanda,
		},
	}

	if s.narrator != nil {
		if summary, err := s.narrator.Summarize(ctx, payload); err != nil {
			log.Printf("[WARN] narrative generation failed: %v", err)
		} else if summary != "" {
			payload["resumo_executivo"] = summary
		}
	}

	rep := &Report{
		ID:           util.NewID(),
		FileName:     meta.FileName,
		Cliente:      meta.Cliente,
		Unidade:      meta.Unidade,
		InicioReport: stringOrEmpty(inicio),
		FimReport:    stringOrEmpty(fim),
		Payload:      payload,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if rep.FileName == "" {
		rep.FileName = fmt.Sprintf("relatorio_%s.pdf", rep.CreatedAt.Format("20060102_150405"))
	}

	if err := s.store.Insert(ctx, rep); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	if s.agent != nil {
		if err := s.agent.Forward(ctx, rep); err != nil {
			log.Printf("[WARN] agent forward failed for report %s: %v", rep.ID, err)
		}
	}

	return rep, nil
}

func (s *ReportService) GetByID(ctx context.Context, id string) (*Report, error) {
	if s.store == nil {
		return nil, util.Internal("report store not configured")
	}
	return s.store.GetByID(ctx, id)
}

func (s *ReportService) List(ctx context.Context, limit int) ([]Report, error) {
	if s.store == nil {
		return nil, util.Internal("report store not configured")
	}
	return s.store.List(ctx, limit)
}

func (s *ReportService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return util.Internal("report store not configured")
	}
	return s.store.Delete(ctx, id)
}

// reportPeriod lifts the batch period from the voltage analyzer meta.
func reportPeriod(tensao map[string]any) (any, any) {
	meta, ok := tensao["meta"].(map[string]any)
	if !ok {
		return nil, nil
	}
	return meta["periodo_inicio"], meta["periodo_fim"]
}

func stringOrEmpty(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
