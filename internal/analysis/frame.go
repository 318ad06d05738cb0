// internal/analysis/frame.go
// Input normalization + the time-sorted sample table all analyzers share.

package analysis

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// envelopeKey is the wrapper key some feeds put around each record.
const envelopeKey = "dadoEnergia"

// Record is one flat telemetry sample as decoded from JSON.
type Record = map[string]any

// idFields are identifier columns that are never treated as channels.
var idFields = map[string]bool{
	"id_consumidor":  true,
	"id_equipamento": true,
}

// Normalize flattens the accepted input shapes (nil, a single record, a list
// of records, each optionally wrapped in a dadoEnergia envelope) into an
// ordered slice of records. Non-map elements in a list are silently dropped;
// nil input yields an empty slice, never an error.
func Normalize(input any) []Record {
	switch v := input.(type) {
	case nil:
		return []Record{}
	case map[string]any:
		return []Record{unwrap(v)}
	case []any:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, unwrap(m))
		}
		return out
	case []map[string]any:
		out := make([]Record, 0, len(v))
		for _, m := range v {
			out = append(out, unwrap(m))
		}
		return out
	}
	return []Record{}
}

func unwrap(m map[string]any) Record {
	if inner, ok := m[envelopeKey].(map[string]any); ok {
		return inner
	}
	return m
}

// Sample is one record after timestamp parsing and numeric coercion.
type Sample struct {
	When    time.Time
	HasTime bool

	fields map[string]float64
}

// Value returns the channel value for the sample; ok is false when the field
// is absent or was not numeric.
func (s Sample) Value(name string) (float64, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Frame is the normalized, time-sorted batch all analyzers operate on.
// Samples with an unparsable timestamp sort last but are kept for counts.
type Frame struct {
	Samples []Sample

	// Parsed and Invalid count timestamp parse outcomes over the batch.
	Parsed  int
	Invalid int

	columns map[string]bool
}

// NewFrame builds a frame from normalized records. tsField names the
// designated timestamp column and parse is the analyzer-specific parser.
func NewFrame(records []Record, tsField string, parse TimestampParser) *Frame {
	f := &Frame{
		Samples: make([]Sample, 0, len(records)),
		columns: make(map[string]bool),
	}
	for _, rec := range records {
		s := Sample{fields: make(map[string]float64, len(rec))}
		for k, raw := range rec {
			f.columns[k] = true
			if k == tsField || idFields[k] {
				continue
			}
			if v, ok := toFloat(raw); ok {
				s.fields[k] = v
			}
		}
		if str, ok := rec[tsField].(string); ok {
			if t, ok := parse(str); ok {
				s.When = t
				s.HasTime = true
			}
		}
		if s.HasTime {
			f.Parsed++
		} else {
			f.Invalid++
		}
		f.Samples = append(f.Samples, s)
	}

	sort.SliceStable(f.Samples, func(i, j int) bool {
		a, b := f.Samples[i], f.Samples[j]
		if a.HasTime != b.HasTime {
			return a.HasTime
		}
		if !a.HasTime {
			return false
		}
		return a.When.Before(b.When)
	})
	return f
}

// HasColumn reports whether any record in the batch carried the key, even if
// its values were never numeric.
func (f *Frame) HasColumn(name string) bool { return f.columns[name] }

// Values returns the non-missing values of a channel in batch order.
func (f *Frame) Values(name string) []float64 {
	var out []float64
	for _, s := range f.Samples {
		if v, ok := s.Value(name); ok {
			out = append(out, v)
		}
	}
	return out
}

// Period returns the earliest and latest valid timestamps of the batch.
func (f *Frame) Period() (start, end time.Time, ok bool) {
	if f.Parsed == 0 {
		return time.Time{}, time.Time{}, false
	}
	// valid timestamps sort first
	return f.Samples[0].When, f.Samples[f.Parsed-1].When, true
}

// toFloat coerces a decoded JSON value to a finite float64. Anything else is
// a missing value, never an error.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
