// internal/analysis/resample.go
// Time-bucket aggregation and calendar profiles for the demand analyzer.

package analysis

import (
	"sort"
	"time"
)

const (
	AggHour = "hour"
	AggDay  = "day"
)

// AggPoint is one resampled bucket: the bucket start and the mean of the
// samples that fell into it.
type AggPoint struct {
	When time.Time
	Mean float64
}

// ResampleMean buckets the per-sample series by hour or day and averages
// each bucket. Samples without a valid timestamp or value are skipped;
// buckets that end up with no samples are omitted, not null-filled.
func ResampleMean(f *Frame, series []Float, agg string) []AggPoint {
	type acc struct {
		sum float64
		n   int
	}
	buckets := make(map[time.Time]*acc)
	for i, s := range f.Samples {
		if !s.HasTime || !series[i].Valid {
			continue
		}
		key := truncateTo(s.When, agg)
		a := buckets[key]
		if a == nil {
			a = &acc{}
			buckets[key] = a
		}
		a.sum += series[i].Val
		a.n++
	}

	out := make([]AggPoint, 0, len(buckets))
	for ts, a := range buckets {
		out = append(out, AggPoint{When: ts, Mean: a.sum / float64(a.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].When.Before(out[j].When) })
	return out
}

func truncateTo(t time.Time, agg string) time.Time {
	if agg == AggDay {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	return t.Truncate(time.Hour)
}

// HourlyProfile averages the raw series per hour of day. The result always
// spans the full 0..23 range with null for hours that never occur; nil is
// returned when no sample has both a timestamp and a value.
func HourlyProfile(f *Frame, series []Float) []Float {
	sums := make([]float64, 24)
	counts := make([]int, 24)
	any := false
	for i, s := range f.Samples {
		if !s.HasTime || !series[i].Valid {
			continue
		}
		h := s.When.Hour()
		sums[h] += series[i].Val
		counts[h]++
		any = true
	}
	if !any {
		return nil
	}
	out := make([]Float, 24)
	for h := range out {
		if counts[h] > 0 {
			out[h] = num(sums[h] / float64(counts[h]))
		}
	}
	return out
}

// WeekdayProfile averages the raw series per day of week, 0=Monday..6=Sunday,
// reindexed to the full range with nulls. Nil when no usable sample exists.
func WeekdayProfile(f *Frame, series []Float) []Float {
	sums := make([]float64, 7)
	counts := make([]int, 7)
	any := false
	for i, s := range f.Samples {
		if !s.HasTime || !series[i].Valid {
			continue
		}
		d := mondayWeekday(s.When)
		sums[d] += series[i].Val
		counts[d]++
		any = true
	}
	if !any {
		return nil
	}
	out := make([]Float, 7)
	for d := range out {
		if counts[d] > 0 {
			out[d] = num(sums[d] / float64(counts[d]))
		}
	}
	return out
}

// mondayWeekday maps time.Weekday (Sunday=0) to the 0=Monday convention the
// report consumers expect.
func mondayWeekday(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }

// TopPeaks returns the n highest buckets, descending by value. Ties keep
// chronological order.
func TopPeaks(series []AggPoint, n int) []AggPoint {
	out := make([]AggPoint, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
