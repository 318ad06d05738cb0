// internal/analysis/anomaly_test.go
package analysis_test

import (
	"fmt"
	"testing"

	"circuitsense/internal/analysis"
)

func anomalyFrame(values []float64) *analysis.Frame {
	var list []any
	for i, v := range values {
		list = append(list, map[string]any{
			"data_inc":   fmt.Sprintf("2025-01-01T10:%02d:00", i),
			"corrente_1": v,
		})
	}
	return analysis.NewFrame(analysis.Normalize(list), "data_inc", analysis.ParseISO)
}

func TestDetectAnomaliesFlagsOutlier(t *testing.T) {
	// ten identical readings plus one spike; the spike's z-score is ~3.05
	values := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 100}
	f := anomalyFrame(values)

	got := analysis.DetectAnomalies(f, "corrente_1", 3.0)
	if len(got) != 1 || got[0] != 10 {
		t.Fatalf("expected only the spike at index 10, got %v", got)
	}
}

func TestDetectAnomaliesThresholdIsStrict(t *testing.T) {
	// with the spike at z ~1.79, threshold 1.5 catches it and 1.8 does not
	values := []float64{10, 10, 10, 10, 100}
	f := anomalyFrame(values)

	if got := analysis.DetectAnomalies(f, "corrente_1", 1.5); len(got) != 1 || got[0] != 4 {
		t.Fatalf("threshold 1.5: expected [4], got %v", got)
	}
	if got := analysis.DetectAnomalies(f, "corrente_1", 1.8); len(got) != 0 {
		t.Fatalf("threshold 1.8: expected none, got %v", got)
	}
}

func TestDetectAnomaliesConstantSeries(t *testing.T) {
	f := anomalyFrame([]float64{5, 5, 5, 5})
	got := analysis.DetectAnomalies(f, "corrente_1", 3.0)
	if got == nil {
		t.Fatalf("result must be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("zero-variance series must report no anomalies, got %v", got)
	}
}

func TestDetectAnomaliesMissingChannel(t *testing.T) {
	f := anomalyFrame([]float64{1, 2, 3})
	if got := analysis.DetectAnomalies(f, "tensao_1", 3.0); len(got) != 0 {
		t.Fatalf("absent channel must report no anomalies, got %v", got)
	}
}
