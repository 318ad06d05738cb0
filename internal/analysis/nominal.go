// internal/analysis/nominal.go
package analysis

import "math"

// Legal nominal voltages for the served grids. Snapping applies to the
// voltage analyzer only; current/power/demand use the raw median.
var voltageLevels = []float64{110, 220, 380}

// DetectNominal pools the non-missing values of a channel group and returns
// their median. Null means "undetected" and suppresses event detection
// downstream; it is not an error.
func DetectNominal(f *Frame, group []string) Float {
	var pool []float64
	for _, ch := range group {
		pool = append(pool, f.Values(ch)...)
	}
	return Median(pool)
}

// SnapToLevels returns the candidate level nearest to m. Ties resolve to the
// earlier candidate.
func SnapToLevels(m float64, levels []float64) float64 {
	best := levels[0]
	bestDist := math.Abs(levels[0] - m)
	for _, lv := range levels[1:] {
		if d := math.Abs(lv - m); d < bestDist {
			best, bestDist = lv, d
		}
	}
	return best
}
