// internal/analysis/correlation_test.go
package analysis_test

import (
	"math"
	"testing"

	"circuitsense/internal/analysis"
)

func TestPearson(t *testing.T) {
	r, ok := analysis.Pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	if !ok || math.Abs(r-1.0) > 1e-12 {
		t.Fatalf("perfect positive correlation: r=%v ok=%v", r, ok)
	}
	r, ok = analysis.Pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	if !ok || math.Abs(r+1.0) > 1e-12 {
		t.Fatalf("perfect negative correlation: r=%v ok=%v", r, ok)
	}
	if _, ok := analysis.Pearson([]float64{1, 2, 3}, []float64{5, 5, 5}); ok {
		t.Fatalf("zero variance side must not produce a coefficient")
	}
}

func TestCorrelationMatrixPairwiseComplete(t *testing.T) {
	records := analysis.Normalize([]any{
		map[string]any{"tensao_1": 218.0, "tensao_2": 219.0},
		map[string]any{"tensao_1": 220.0, "tensao_2": 221.0},
		map[string]any{"tensao_1": 222.0}, // tensao_2 missing here
	})
	f := analysis.NewFrame(records, "data_coleta", analysis.ParseBR)

	m := analysis.CorrelationMatrix(f, []string{"tensao_1", "tensao_2", "fator_potencia"})
	row, ok := m["tensao_1"].(map[string]any)
	if !ok {
		t.Fatalf("missing tensao_1 row: %v", m)
	}
	if _, present := row["fator_potencia"]; present {
		t.Fatalf("absent column must not appear in the matrix")
	}
	r, ok := row["tensao_2"].(float64)
	if !ok {
		t.Fatalf("tensao_1/tensao_2 should correlate over the 2 complete pairs: %v", row["tensao_2"])
	}
	if math.Abs(r-1.0) > 1e-12 {
		t.Fatalf("r = %v, want 1", r)
	}
}

func TestCorrelationMatrixNeedsTwoColumns(t *testing.T) {
	records := analysis.Normalize([]any{map[string]any{"tensao_1": 220.0}})
	f := analysis.NewFrame(records, "data_coleta", analysis.ParseBR)
	if m := analysis.CorrelationMatrix(f, []string{"tensao_1", "tensao_2"}); len(m) != 0 {
		t.Fatalf("fewer than two present columns must yield an empty matrix: %v", m)
	}
}
