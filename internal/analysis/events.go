// internal/analysis/events.go
package analysis

// EventKinds are the directional labels a tolerance violation is tagged
// with; they vary by physical domain (subtensão/sobretensão,
// subcorrente/sobrecorrente, queda/sobrecarga, queda/pico de demanda).
type EventKinds struct {
	Under string
	Over  string
}

var (
	VoltageKinds = EventKinds{Under: "subtensão", Over: "sobretensão"}
	CurrentKinds = EventKinds{Under: "subcorrente", Over: "sobrecorrente"}
	PowerKinds   = EventKinds{Under: "queda_potencia", Over: "sobrecarga_potencia"}
	DemandKinds  = EventKinds{Under: "queda_demanda", Over: "pico_demanda"}
)

// ClassifyEvent checks a value against the tolerance band around the nominal
// level. The band is inclusive at both bounds: only strictly-outside values
// produce an event. The in-band "ok" state is internal and never surfaced.
func ClassifyEvent(val, nominal, tol float64, kinds EventKinds) (string, bool) {
	low := nominal * (1 - tol)
	high := nominal * (1 + tol)
	switch {
	case val < low:
		return kinds.Under, true
	case val > high:
		return kinds.Over, true
	}
	return "", false
}
