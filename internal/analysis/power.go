// internal/analysis/power.go
// Active/reactive power analyzer. The component list is dynamic: only
// columns present in the batch are analyzed, in a fixed display order.
// Events are evaluated against the total active power only, with the raw
// (unsnapped) median as the nominal level.

package analysis

const powerTotalField = "potencia_ativa_tot"

// Display order; presence in the batch decides inclusion.
var powerComponents = []string{
	"potencia_ativa_1", "potencia_ativa_2", "potencia_ativa_3",
	"potencia_ativa_tot",
	"potencia_reat_1", "potencia_reat_2", "potencia_reat_3",
	"potencia_reat_tot",
}

var powerStatLabels = statLabels{
	key:  "Componente",
	mean: "Média",
	std:  "Desvio Padrão",
	min:  "Mín",
	max:  "Máx",
}

// AnalyzePower runs the power pipeline over one batch of records.
func AnalyzePower(records any, opts Options) map[string]any {
	opts = opts.withDefaults()
	f := NewFrame(Normalize(records), "data_inc", ParseISO)

	var comps []string
	for _, c := range powerComponents {
		if f.HasColumn(c) {
			comps = append(comps, c)
		}
	}

	nominal := Median(f.Values(powerTotalField))

	table := make([]map[string]any, 0, len(comps))
	trends := make(map[string]any, len(comps))
	anomalies := make(map[string]any, len(comps))
	for _, c := range comps {
		table = append(table, statsRow(powerStatLabels, c, Describe(f.Values(c))))
		trends[c] = trendMap(FitTrend(f, c))
		anomalies[c] = DetectAnomalies(f, c, opts.ZThreshold)
	}

	series := make([]map[string]any, 0, len(f.Samples))
	for _, s := range f.Samples {
		point := map[string]any{"data_inc": timeOrNil(s, FormatMinute)}
		for _, c := range comps {
			point[c] = valueOrNil(s, c)
		}
		series = append(series, point)
	}

	events := make([]map[string]any, 0)
	if nominal.Valid {
		for _, s := range f.Samples {
			v, ok := s.Value(powerTotalField)
			if !ok {
				continue
			}
			kind, hit := ClassifyEvent(v, nominal.Val, opts.TolPerc, PowerKinds)
			if !hit {
				continue
			}
			events = append(events, map[string]any{
				"data_inc":   timeOrNil(s, FormatMinute),
				"componente": powerTotalField,
				"valor":      v,
				"tipo":       kind,
			})
		}
	}

	start, end := periodStrings(f, FormatMinute)
	return map[string]any{
		"meta": map[string]any{
			"registros":               len(f.Samples),
			"periodo_inicio":          start,
			"periodo_fim":             end,
			"nivel_nominal_ativa_tot": numOrNil(nominal),
			"tolerancia_perc":         opts.TolPerc,
			"timestamps_parsed":       f.Parsed,
			"timestamps_invalid":      f.Invalid,
		},
		"tabela_estatisticas":          map[string]any{"data": table},
		"grafico_potencia_time_series": map[string]any{"data": series},
		"tendencias_lin":               trends,
		"anomalias_indices":            anomalies,
		"events_out_of_limit":          events,
	}
}
