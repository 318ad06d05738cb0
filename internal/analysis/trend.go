// internal/analysis/trend.go
package analysis

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TrendResult is a degree-1 least-squares fit of a channel against elapsed
// seconds. A null pair signals fewer than 2 usable points, non-finite
// inputs, or a degenerate time axis. Absence of a trend is a valid outcome.
type TrendResult struct {
	Slope     Float
	Intercept Float
}

// FitTrend fits a channel of the frame against its timestamps.
func FitTrend(f *Frame, channel string) TrendResult {
	var times []time.Time
	var values []float64
	for _, s := range f.Samples {
		if !s.HasTime {
			continue
		}
		v, ok := s.Value(channel)
		if !ok {
			continue
		}
		times = append(times, s.When)
		values = append(values, v)
	}
	return fitLine(times, values)
}

// fitLine runs OLS over (elapsed seconds since the earliest point, value)
// pairs. Preconditions are checked explicitly so the failure paths are
// enumerable instead of recovered from.
func fitLine(times []time.Time, values []float64) TrendResult {
	var t0 time.Time
	var xs, ys []float64
	for i, t := range times {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			continue
		}
		if len(xs) == 0 || t.Before(t0) {
			t0 = t
		}
		xs = append(xs, 0) // filled below, once t0 is known
		ys = append(ys, values[i])
	}
	if len(xs) < 2 {
		return TrendResult{}
	}
	j := 0
	for i, t := range times {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			continue
		}
		xs[j] = t.Sub(t0).Seconds()
		j++
	}

	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		return TrendResult{}
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return TrendResult{}
	}
	return TrendResult{Slope: num(slope), Intercept: num(intercept)}
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
