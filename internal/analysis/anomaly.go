// internal/analysis/anomaly.go
package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// DetectAnomalies flags samples of a channel whose z-score magnitude
// strictly exceeds zThr. Indices are positions in the sorted batch. A channel
// with no data or zero/undefined standard deviation reports no anomalies.
func DetectAnomalies(f *Frame, channel string, zThr float64) []int {
	values := make([]Float, len(f.Samples))
	for i, s := range f.Samples {
		if v, ok := s.Value(channel); ok {
			values[i] = Float{Val: v, Valid: true}
		}
	}
	return zScoreIndices(values, zThr)
}

func zScoreIndices(values []Float, zThr float64) []int {
	out := make([]int, 0)
	var present []float64
	for _, v := range values {
		if v.Valid {
			present = append(present, v.Val)
		}
	}
	if len(present) == 0 {
		return out
	}
	mean, _ := stats.Mean(present)
	sigma, _ := stats.StandardDeviationSample(present)
	if sigma == 0 || math.IsNaN(sigma) {
		return out
	}
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if math.Abs((v.Val-mean)/sigma) > zThr {
			out = append(out, i)
		}
	}
	return out
}
