// internal/analysis/demand.go
// Demand-profile analyzer: resolves a demand series from the batch, buckets
// it by hour or day, and derives calendar profiles, peaks, trend, anomalies
// and tolerance events over the aggregated series. The nominal level here is
// the median of the *resampled* series, unlike the raw-sample medians of the
// other analyzers.

package analysis

import (
	"fmt"
	"time"

	"circuitsense/internal/util"
)

// demand column fallbacks, tried in order after the caller's field
var (
	demandCandidates = []string{"potencia_ativa_tot", "potencia_ap_tot"}
	demandPhases     = []string{"potencia_ativa_1", "potencia_ativa_2", "potencia_ativa_3"}
	demandAlternates = []string{"potencia_ap_tot", "potencia_ap_1", "potencia_ap_2", "potencia_ap_3"}
)

// FieldSumPhases is the meta.field_used marker for the per-phase sum path.
const FieldSumPhases = "soma_fases"

// AnalyzeDemand runs the demand pipeline over one batch of records. The only
// caller-contract error is an unsupported aggregation granularity; every
// data-quality problem degrades to nulls and empty lists instead.
func AnalyzeDemand(records any, opts DemandOptions) (map[string]any, error) {
	opts = opts.withDefaults()
	if opts.Agg != AggHour && opts.Agg != AggDay {
		return nil, util.BadInput(fmt.Sprintf("unsupported aggregation %q (want hour or day)", opts.Agg))
	}

	f := NewFrame(Normalize(records), "data_inc", ParseISO)

	fieldUsed, series := demandSeries(f, opts.Field)

	var raw []float64
	for _, v := range series {
		if v.Valid {
			raw = append(raw, v.Val)
		}
	}
	cs := Describe(raw)

	agg := ResampleMean(f, series, opts.Agg)

	aggSeries := make([]map[string]any, 0, len(agg))
	aggValues := make([]Float, len(agg))
	for i, p := range agg {
		aggSeries = append(aggSeries, map[string]any{
			"timestamp": FormatMinute(p.When),
			"valor":     p.Mean,
		})
		aggValues[i] = num(p.Mean)
	}

	peaks := make([]map[string]any, 0)
	for _, p := range TopPeaks(agg, 5) {
		peaks = append(peaks, map[string]any{
			"timestamp": FormatMinute(p.When),
			"valor":     p.Mean,
		})
	}

	var aggFloats []float64
	aggTimes := make([]time.Time, len(agg))
	for i, p := range agg {
		aggTimes[i] = p.When
		aggFloats = append(aggFloats, p.Mean)
	}
	trends := map[string]any{"agregada": trendMap(fitLine(aggTimes, aggFloats))}

	anomalies := zScoreIndices(aggValues, opts.ZThreshold)

	events := make([]map[string]any, 0)
	if nominal := Median(aggFloats); nominal.Valid {
		for _, p := range agg {
			kind, hit := ClassifyEvent(p.Mean, nominal.Val, opts.TolPerc, DemandKinds)
			if !hit {
				continue
			}
			events = append(events, map[string]any{
				"timestamp": FormatMinute(p.When),
				"valor":     p.Mean,
				"tipo":      kind,
			})
		}
	}

	start, end := periodStrings(f, FormatMinute)
	return map[string]any{
		"meta": map[string]any{
			"registros":          len(f.Samples),
			"periodo_inicio":     start,
			"periodo_fim":        end,
			"field_used":         fieldUsed,
			"tolerancia_perc":    opts.TolPerc,
			"timestamps_parsed":  f.Parsed,
			"timestamps_invalid": f.Invalid,
		},
		"estatisticas_demanda": map[string]any{
			"média":         numOrNil(cs.Mean),
			"desvio_padrao": numOrNil(cs.Std),
			"mín":           numOrNil(cs.Min),
			"máx":           numOrNil(cs.Max),
			"amostras":      cs.Count,
		},
		"perfil_horario":      hourEntries(HourlyProfile(f, series)),
		"perfil_diario":       weekdayEntries(WeekdayProfile(f, series)),
		"time_series_agg":     map[string]any{"data": aggSeries},
		"picos":               peaks,
		"tendencias_lin":      trends,
		"anomalias_indices":   anomalies,
		"events_out_of_limit": events,
	}, nil
}

// demandSeries resolves which column (or phase sum) represents demand and
// materializes it aligned with the sorted samples. Resolution order: the
// caller's field if that column exists, then the conventional totals, then
// the sum of the three active-power phases (all three columns required),
// then the apparent-power alternates, else an all-missing series.
func demandSeries(f *Frame, field string) (any, []Float) {
	series := make([]Float, len(f.Samples))

	if field != "" && f.HasColumn(field) {
		return field, columnSeries(f, field, series)
	}
	for _, c := range demandCandidates {
		if f.HasColumn(c) {
			return c, columnSeries(f, c, series)
		}
	}
	allPhases := true
	for _, ph := range demandPhases {
		if !f.HasColumn(ph) {
			allPhases = false
			break
		}
	}
	if allPhases {
		for i, s := range f.Samples {
			var sum float64
			found := false
			for _, ph := range demandPhases {
				if v, ok := s.Value(ph); ok {
					sum += v
					found = true
				}
			}
			if found {
				series[i] = Float{Val: sum, Valid: true}
			}
		}
		return FieldSumPhases, series
	}
	for _, c := range demandAlternates {
		if f.HasColumn(c) {
			return c, columnSeries(f, c, series)
		}
	}
	return nil, series
}

func columnSeries(f *Frame, name string, series []Float) []Float {
	for i, s := range f.Samples {
		if v, ok := s.Value(name); ok {
			series[i] = Float{Val: v, Valid: true}
		}
	}
	return series
}

// hourEntries reindexes an hourly profile to the stable wire shape.
func hourEntries(profile []Float) []map[string]any {
	out := make([]map[string]any, 0, len(profile))
	for h, v := range profile {
		out = append(out, map[string]any{"hour": h, "media": numOrNil(v)})
	}
	return out
}

func weekdayEntries(profile []Float) []map[string]any {
	out := make([]map[string]any, 0, len(profile))
	for d, v := range profile {
		out = append(out, map[string]any{"dayofweek": d, "media": numOrNil(v)})
	}
	return out
}
