// internal/analysis/timestamp.go
package analysis

import (
	"strings"
	"time"
)

// TimestampParser converts a raw date field into a timezone-naive instant.
type TimestampParser func(string) (time.Time, bool)

// Output formats. The voltage feed keeps seconds for legacy consumers; the
// other analyzers emit minutes only. Do not unify.
const (
	outFmtMinute = "02/01/2006 15:04"
	outFmtSecond = "02/01/2006 15:04:05"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseISO accepts ISO-8601 variants (trailing Z, numeric offsets, space
// separator, fractional seconds, date-only). Zone-aware inputs are converted
// to UTC and the zone dropped.
func ParseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
	}
	return time.Time{}, false
}

var brLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ParseBR accepts the fixed day/month/year hour:minute[:second] format used
// by the voltage feed.
func ParseBR(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range brLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatMinute serializes a timestamp as DD/MM/YYYY HH:MM.
func FormatMinute(t time.Time) string { return t.Format(outFmtMinute) }

// FormatSecond serializes a timestamp as DD/MM/YYYY HH:MM:SS.
func FormatSecond(t time.Time) string { return t.Format(outFmtSecond) }
