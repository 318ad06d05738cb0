// internal/analysis/current.go
// RMS current analyzer. The feed carries ISO-8601 timestamps in data_inc and
// there is no fixed nominal candidate set: the reference level is the pooled
// median of the samples themselves.

package analysis

var currentPhases = []string{"corrente_1", "corrente_2", "corrente_3"}

var currentStatLabels = statLabels{
	key:  "Fase",
	mean: "Média (A)",
	std:  "Desvio Padrão (A)",
	min:  "Mín (A)",
	max:  "Máx (A)",
}

// AnalyzeCurrent runs the current pipeline over one batch of records.
func AnalyzeCurrent(records any, opts Options) map[string]any {
	opts = opts.withDefaults()
	f := NewFrame(Normalize(records), "data_inc", ParseISO)

	nominal := DetectNominal(f, currentPhases)

	table := make([]map[string]any, 0, len(currentPhases))
	trends := make(map[string]any, len(currentPhases))
	anomalies := make(map[string]any, len(currentPhases))
	for _, ph := range currentPhases {
		table = append(table, statsRow(currentStatLabels, ph, Describe(f.Values(ph))))
		trends[ph] = trendMap(FitTrend(f, ph))
		anomalies[ph] = DetectAnomalies(f, ph, opts.ZThreshold)
	}

	series := make([]map[string]any, 0, len(f.Samples))
	for _, s := range f.Samples {
		point := map[string]any{"data_inc": timeOrNil(s, FormatMinute)}
		for _, ph := range currentPhases {
			point[ph] = valueOrNil(s, ph)
		}
		series = append(series, point)
	}

	events := make([]map[string]any, 0)
	if nominal.Valid {
		for _, s := range f.Samples {
			for _, ph := range currentPhases {
				v, ok := s.Value(ph)
				if !ok {
					continue
				}
				kind, hit := ClassifyEvent(v, nominal.Val, opts.TolPerc, CurrentKinds)
				if !hit {
					continue
				}
				events = append(events, map[string]any{
					"data_inc": timeOrNil(s, FormatMinute),
					"fase":     ph,
					"valor":    v,
					"tipo":     kind,
				})
			}
		}
	}

	start, end := periodStrings(f, FormatMinute)
	return map[string]any{
		"meta": map[string]any{
			"registros":               len(f.Samples),
			"periodo_inicio":          start,
			"periodo_fim":             end,
			"nivel_nominal_detectado": numOrNil(nominal),
			"tolerancia_perc":         opts.TolPerc,
			"timestamps_parsed":       f.Parsed,
			"timestamps_invalid":      f.Invalid,
		},
		"tabela_estatisticas":          map[string]any{"data": table},
		"grafico_corrente_time_series": map[string]any{"data": series},
		"tendencias_lin":               trends,
		"anomalias_indices":            anomalies,
		"events_out_of_limit":          events,
	}
}
