// internal/analysis/voltage.go
// RMS voltage analyzer: per-phase statistics, nominal level snapped to the
// legal grid voltages, unbalance, correlations, trend/anomaly/event
// detection. Timestamp field is data_coleta (fixed DD/MM/YYYY format) and
// serialized output keeps seconds for legacy report compatibility.

package analysis

import "math"

var voltagePhases = []string{"tensao_1", "tensao_2", "tensao_3"}

var voltageStatLabels = statLabels{
	key:  "Fase",
	mean: "Média (V)",
	std:  "Desvio Padrão (V)",
	min:  "Mín (V)",
	max:  "Máx (V)",
}

var voltageCorrCols = []string{"tensao_1", "tensao_2", "tensao_3", "potencia_ativa_tot", "fator_potencia"}

// AnalyzeVoltage runs the voltage pipeline over one batch of records.
func AnalyzeVoltage(records any, opts Options) map[string]any {
	opts = opts.withDefaults()
	f := NewFrame(Normalize(records), "data_coleta", ParseBR)

	nominal := DetectNominal(f, voltagePhases)
	if nominal.Valid {
		nominal = num(SnapToLevels(nominal.Val, voltageLevels))
	}

	table := make([]map[string]any, 0, len(voltagePhases))
	trends := make(map[string]any, len(voltagePhases))
	anomalies := make(map[string]any, len(voltagePhases))
	for _, ph := range voltagePhases {
		table = append(table, statsRow(voltageStatLabels, ph, Describe(f.Values(ph))))
		trends[ph] = trendMap(FitTrend(f, ph))
		anomalies[ph] = DetectAnomalies(f, ph, opts.ZThreshold)
	}

	series := make([]map[string]any, 0, len(f.Samples))
	for _, s := range f.Samples {
		point := map[string]any{
			"data_coleta":        timeOrNil(s, FormatSecond),
			"unbalance_perc":     numOrNil(phaseUnbalance(s)),
			"potencia_ativa_tot": valueOrNil(s, "potencia_ativa_tot"),
		}
		for _, ph := range voltagePhases {
			point[ph] = valueOrNil(s, ph)
		}
		series = append(series, point)
	}

	events := make([]map[string]any, 0)
	if nominal.Valid {
		for _, s := range f.Samples {
			for _, ph := range voltagePhases {
				v, ok := s.Value(ph)
				if !ok {
					continue
				}
				kind, hit := ClassifyEvent(v, nominal.Val, opts.TolPerc, VoltageKinds)
				if !hit {
					continue
				}
				events = append(events, map[string]any{
					"data_coleta": timeOrNil(s, FormatSecond),
					"fase":        ph,
					"valor":       v,
					"tipo":        kind,
				})
			}
		}
	}

	start, end := periodStrings(f, FormatSecond)
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
		"tabela_estatisticas":        map[string]any{"data": table},
		"grafico_tensao_time_series": map[string]any{"data": series},
		"tendencias_lin":             trends,
		"anomalias_indices":          anomalies,
		"events_out_of_limit":        events,
		"correlacoes":                CorrelationMatrix(f, voltageCorrCols),
	}
}

// phaseUnbalance is max |phase - mean| / mean * 100 over the present phases
// of one sample; null with fewer than 2 phases or a zero mean.
func phaseUnbalance(s Sample) Float {
	var vals []float64
	for _, ph := range voltagePhases {
		if v, ok := s.Value(ph); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) < 2 {
		return Float{}
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	avg := sum / float64(len(vals))
	if avg == 0 {
		return Float{}
	}
	var worst float64
	for _, v := range vals {
		if d := math.Abs(v - avg); d > worst {
			worst = d
		}
	}
	return num(worst / avg * 100)
}
