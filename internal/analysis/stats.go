// internal/analysis/stats.go
package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Float is a nullable float value. Invalid serializes as JSON null.
type Float struct {
	Val   float64
	Valid bool
}

func num(f float64) Float {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Float{}
	}
	return Float{Val: f, Valid: true}
}

// ChannelStats holds the per-channel summary. Std is the sample (n-1)
// standard deviation; for a single sample it is null (the library yields NaN
// there, matching the batch source's convention).
type ChannelStats struct {
	Mean  Float
	Std   Float
	Min   Float
	Max   Float
	Count int
}

// Describe summarizes the non-missing values of one channel. An empty
// channel yields all-null fields and count 0.
func Describe(values []float64) ChannelStats {
	if len(values) == 0 {
		return ChannelStats{}
	}
	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviationSample(values)
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	return ChannelStats{
		Mean:  num(mean),
		Std:   num(std),
		Min:   num(lo),
		Max:   num(hi),
		Count: len(values),
	}
}

// Median of the given values; null when empty.
func Median(values []float64) Float {
	if len(values) == 0 {
		return Float{}
	}
	m, err := stats.Median(values)
	if err != nil {
		return Float{}
	}
	return num(m)
}
