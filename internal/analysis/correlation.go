// internal/analysis/correlation.go
package analysis

import "math"

// Pearson computes the correlation coefficient over aligned pairs; ok is
// false when either side has zero variance.
func Pearson(x, y []float64) (float64, bool) {
	n := float64(len(x))
	var sx, sy, sxx, syy, sxy float64
	for i := range x {
		xi, yi := x[i], y[i]
		sx += xi
		sy += yi
		sxx += xi * xi
		syy += yi * yi
		sxy += xi * yi
	}
	num := n*sxy - sx*sy
	den := math.Sqrt((n*sxx - sx*sx) * (n*syy - sy*sy))
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// CorrelationMatrix builds a pairwise-complete Pearson matrix over the
// columns of cols that exist in the batch. Fewer than two present columns
// yields an empty map. Entries with fewer than 2 paired observations or zero
// variance are null.
func CorrelationMatrix(f *Frame, cols []string) map[string]any {
	var present []string
	for _, c := range cols {
		if f.HasColumn(c) {
			present = append(present, c)
		}
	}
	if len(present) < 2 {
		return map[string]any{}
	}

	out := make(map[string]any, len(present))
	for _, a := range present {
		row := make(map[string]any, len(present))
		for _, b := range present {
			row[b] = pairCorrelation(f, a, b)
		}
		out[a] = row
	}
	return out
}

func pairCorrelation(f *Frame, a, b string) any {
	var xs, ys []float64
	for _, s := range f.Samples {
		va, okA := s.Value(a)
		vb, okB := s.Value(b)
		if okA && okB {
			xs = append(xs, va)
			ys = append(ys, vb)
		}
	}
	if len(xs) < 2 {
		return nil
	}
	r, ok := Pearson(xs, ys)
	if !ok || math.IsNaN(r) {
		return nil
	}
	return r
}
