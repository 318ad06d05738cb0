// internal/analysis/trend_test.go
package analysis_test

import (
	"math"
	"testing"

	"circuitsense/internal/analysis"
)

func trendFrame(rows []map[string]any) *analysis.Frame {
	var list []any
	for _, r := range rows {
		list = append(list, r)
	}
	return analysis.NewFrame(analysis.Normalize(list), "data_inc", analysis.ParseISO)
}

func TestFitTrendPerfectLine(t *testing.T) {
	f := trendFrame([]map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 100.0},
		{"data_inc": "2025-01-01T10:00:10", "potencia_ativa_tot": 110.0},
		{"data_inc": "2025-01-01T10:00:20", "potencia_ativa_tot": 120.0},
	})
	tr := analysis.FitTrend(f, "potencia_ativa_tot")
	if !tr.Slope.Valid || !tr.Intercept.Valid {
		t.Fatalf("trend should be defined: %+v", tr)
	}
	if math.Abs(tr.Slope.Val-1.0) > 1e-9 {
		t.Fatalf("slope = %v, want 1.0 per second", tr.Slope.Val)
	}
	if math.Abs(tr.Intercept.Val-100.0) > 1e-6 {
		t.Fatalf("intercept = %v, want 100", tr.Intercept.Val)
	}
}

func TestFitTrendNeedsTwoPoints(t *testing.T) {
	f := trendFrame([]map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 100.0},
	})
	if tr := analysis.FitTrend(f, "potencia_ativa_tot"); tr.Slope.Valid || tr.Intercept.Valid {
		t.Fatalf("single point must yield null trend: %+v", tr)
	}
}

func TestFitTrendDegenerateTimeAxis(t *testing.T) {
	f := trendFrame([]map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 100.0},
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 120.0},
	})
	if tr := analysis.FitTrend(f, "potencia_ativa_tot"); tr.Slope.Valid {
		t.Fatalf("zero time spread must yield null trend: %+v", tr)
	}
}

func TestFitTrendSkipsSamplesWithoutTimestampOrValue(t *testing.T) {
	f := trendFrame([]map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 100.0},
		{"data_inc": "bogus", "potencia_ativa_tot": 999.0},
		{"data_inc": "2025-01-01T10:01:40"},
		{"data_inc": "2025-01-01T10:00:50", "potencia_ativa_tot": 150.0},
	})
	tr := analysis.FitTrend(f, "potencia_ativa_tot")
	if !tr.Slope.Valid {
		t.Fatalf("trend should survive partial data: %+v", tr)
	}
	if math.Abs(tr.Slope.Val-1.0) > 1e-9 {
		t.Fatalf("slope = %v, want 1.0 (only complete pairs counted)", tr.Slope.Val)
	}
}
