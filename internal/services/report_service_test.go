// internal/services/report_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"circuitsense/internal/analysis"
	"circuitsense/internal/services"
)

type fakeStore struct {
	inserted *services.Report
	failWith error
}

func (s *fakeStore) Insert(ctx context.Context, rep *services.Report) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.inserted = rep
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*services.Report, error) {
	if s.inserted != nil && s.inserted.ID == id {
		return s.inserted, nil
	}
	return nil, errors.New("not found")
}

func (s *fakeStore) List(ctx context.Context, limit int) ([]services.Report, error) {
	if s.inserted == nil {
		return nil, nil
	}
	return []services.Report{*s.inserted}, nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error { return nil }

type fakeAgent struct {
	called bool
	err    error
}

func (a *fakeAgent) Forward(ctx context.Context, rep *services.Report) error {
	a.called = true
	return a.err
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var testBatch = []any{
	map[string]any{
		"tensao_1":           218.0,
		"tensao_2":           221.0,
		"tensao_3":           350.0,
		"potencia_ativa_tot": 100.0,
		"data_coleta":        "01/01/2025 10:00:00",
		"data_inc":           "2025-01-01T10:00:00",
	},
}

func TestGenerateAssemblesReport(t *testing.T) {
	store := &fakeStore{}
	agent := &fakeAgent{}
	clock := fixedClock{at: time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)}
	svc := services.NewReportService(store, agent, nil, clock, analysis.Options{})

	rep, err := svc.Generate(context.Background(), testBatch, services.ReportMeta{
		Cliente: "ACME", Unidade: "Planta 1",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if rep.ID == "" {
		t.Fatalf("report has no id")
	}
	if store.inserted == nil || store.inserted.ID != rep.ID {
		t.Fatalf("report not stored")
	}
	if !agent.called {
		t.Fatalf("agent was not invoked")
	}

	// period comes from the voltage analyzer meta
	if rep.InicioReport != "01/01/2025 10:00:00" {
		t.Fatalf("InicioReport = %q", rep.InicioReport)
	}
	if rep.Payload["cliente"] != "ACME" || rep.Payload["unidade"] != "Planta 1" {
		t.Fatalf("metadata not carried: %v", rep.Payload)
	}

	anal, ok := rep.Payload["analise"].(map[string]any)
	if !ok {
		t.Fatalf("missing analise block")
	}
	for _, k := range []string{"tensao", "corrente", "potencia", "demanda"} {
		if _, ok := anal[k]; !ok {
			t.Fatalf("analise missing %q", k)
		}
	}

	// default file name derives from the fixed clock
	if rep.FileName != "relatorio_20250102_120000.pdf" {
		t.Fatalf("FileName = %q", rep.FileName)
	}
}

func TestGenerateAgentFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{}
	agent := &fakeAgent{err: errors.New("webhook down")}
	svc := services.NewReportService(store, agent, nil, nil, analysis.Options{})

	rep, err := svc.Generate(context.Background(), testBatch, services.ReportMeta{})
	if err != nil {
		t.Fatalf("agent failure must not fail the report: %v", err)
	}
	if store.inserted == nil || store.inserted.ID != rep.ID {
		t.Fatalf("report should still be stored")
	}
}

func TestGenerateStoreFailure(t *testing.T) {
	store := &fakeStore{failWith: errors.New("db down")}
	svc := services.NewReportService(store, nil, nil, nil, analysis.Options{})

	if _, err := svc.Generate(context.Background(), testBatch, services.ReportMeta{}); err == nil {
		t.Fatalf("store failure must surface")
	}
}

func TestGenerateKeepsCallerFileName(t *testing.T) {
	store := &fakeStore{}
	svc := services.NewReportService(store, nil, nil, nil, analysis.Options{})

	rep, err := svc.Generate(context.Background(), testBatch, services.ReportMeta{
		FileName: "mensal_jan.pdf",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if rep.FileName != "mensal_jan.pdf" {
		t.Fatalf("FileName = %q", rep.FileName)
	}
}
