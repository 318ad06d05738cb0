// internal/analysis/result.go
// Shared options and the result-assembly helpers. Every analyzer returns a
// map[string]any holding only primitives (numbers, strings, booleans, null)
// so the result serializes to JSON as-is; NaN/Inf never reach the output.

package analysis

import "time"

const (
	DefaultTolPerc    = 0.10
	DefaultZThreshold = 3.0
)

// Options are the knobs shared by all four analyzers.
type Options struct {
	TolPerc    float64
	ZThreshold float64
}

func (o Options) withDefaults() Options {
	if o.TolPerc <= 0 {
		o.TolPerc = DefaultTolPerc
	}
	if o.ZThreshold <= 0 {
		o.ZThreshold = DefaultZThreshold
	}
	return o
}

// DemandOptions adds the demand-analyzer knobs: the preferred demand column
// and the aggregation granularity (AggHour or AggDay).
type DemandOptions struct {
	Options
	Field string
	Agg   string
}

func (o DemandOptions) withDefaults() DemandOptions {
	o.Options = o.Options.withDefaults()
	if o.Field == "" {
		o.Field = "potencia_ativa_tot"
	}
	if o.Agg == "" {
		o.Agg = AggHour
	}
	return o
}

// numOrNil converts a nullable float to its JSON-ready form.
func numOrNil(v Float) any {
	if !v.Valid {
		return nil
	}
	return v.Val
}

// trendMap serializes a trend fit under the stable wire keys.
func trendMap(tr TrendResult) map[string]any {
	return map[string]any{
		"slope_per_s": numOrNil(tr.Slope),
		"intercept":   numOrNil(tr.Intercept),
	}
}

// statLabels carries the per-analyzer column headings of the statistics
// table (the voltage table says "Média (V)", the current one "Média (A)",
// the power one plain "Média").
type statLabels struct {
	key, mean, std, min, max string
}

func statsRow(labels statLabels, name string, cs ChannelStats) map[string]any {
	return map[string]any{
		labels.key:  name,
		labels.mean: numOrNil(cs.Mean),
		labels.std:  numOrNil(cs.Std),
		labels.min:  numOrNil(cs.Min),
		labels.max:  numOrNil(cs.Max),
		"Amostras":  cs.Count,
	}
}

// timeOrNil renders a sample's timestamp, null when it failed to parse.
func timeOrNil(s Sample, format func(time.Time) string) any {
	if !s.HasTime {
		return nil
	}
	return format(s.When)
}

// valueOrNil renders a sample's channel value, null when missing.
func valueOrNil(s Sample, name string) any {
	if v, ok := s.Value(name); ok {
		return v
	}
	return nil
}

// periodStrings renders the batch period bounds, null when no timestamp in
// the batch parsed.
func periodStrings(f *Frame, format func(time.Time) string) (any, any) {
	start, end, ok := f.Period()
	if !ok {
		return nil, nil
	}
	return format(start), format(end)
}
