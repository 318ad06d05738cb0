// internal/analysis/resample_test.go
package analysis_test

import (
	"testing"
	"time"

	"circuitsense/internal/analysis"
)

// demandFrame builds a frame plus the aligned series the resampler consumes.
func demandFrame(t *testing.T, rows []map[string]any) (*analysis.Frame, []analysis.Float) {
	t.Helper()
	var list []any
	for _, r := range rows {
		list = append(list, r)
	}
	f := analysis.NewFrame(analysis.Normalize(list), "data_inc", analysis.ParseISO)
	series := make([]analysis.Float, len(f.Samples))
	for i, s := range f.Samples {
		if v, ok := s.Value("potencia_ativa_tot"); ok {
			series[i] = analysis.Float{Val: v, Valid: true}
		}
	}
	return f, series
}

func TestResampleMeanHourly(t *testing.T) {
	f, series := demandFrame(t, []map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 10.0},
		{"data_inc": "2025-01-01T10:30:00", "potencia_ativa_tot": 20.0},
		{"data_inc": "2025-01-01T11:15:00", "potencia_ativa_tot": 30.0},
		{"data_inc": "2025-01-01T13:00:00", "potencia_ativa_tot": 40.0},
	})
	agg := analysis.ResampleMean(f, series, analysis.AggHour)

	// the empty 12:00 bucket is omitted, not null-filled
	if len(agg) != 3 {
		t.Fatalf("expected 3 buckets, got %d: %v", len(agg), agg)
	}
	if agg[0].Mean != 15.0 {
		t.Fatalf("10:00 bucket mean = %v, want 15", agg[0].Mean)
	}
	if agg[0].When.Hour() != 10 || agg[1].When.Hour() != 11 || agg[2].When.Hour() != 13 {
		t.Fatalf("bucket order wrong: %v", agg)
	}
}

func TestResampleMeanDaily(t *testing.T) {
	f, series := demandFrame(t, []map[string]any{
		{"data_inc": "2025-01-01T08:00:00", "potencia_ativa_tot": 10.0},
		{"data_inc": "2025-01-01T20:00:00", "potencia_ativa_tot": 30.0},
		{"data_inc": "2025-01-02T08:00:00", "potencia_ativa_tot": 50.0},
	})
	agg := analysis.ResampleMean(f, series, analysis.AggDay)
	if len(agg) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(agg))
	}
	if agg[0].Mean != 20.0 || agg[1].Mean != 50.0 {
		t.Fatalf("day means wrong: %v", agg)
	}
	if agg[0].When.Hour() != 0 {
		t.Fatalf("day bucket should start at midnight: %v", agg[0].When)
	}
}

func TestResampleMeanSkipsUnusableSamples(t *testing.T) {
	f, series := demandFrame(t, []map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 10.0},
		{"data_inc": "bogus", "potencia_ativa_tot": 99.0},
		{"data_inc": "2025-01-01T10:10:00"},
	})
	agg := analysis.ResampleMean(f, series, analysis.AggHour)
	if len(agg) != 1 || agg[0].Mean != 10.0 {
		t.Fatalf("only the complete sample should count: %v", agg)
	}
}

func TestHourlyProfileSpansFullDay(t *testing.T) {
	f, series := demandFrame(t, []map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 10.0},
		{"data_inc": "2025-01-02T10:30:00", "potencia_ativa_tot": 20.0},
		{"data_inc": "2025-01-01T23:00:00", "potencia_ativa_tot": 40.0},
	})
	profile := analysis.HourlyProfile(f, series)
	if len(profile) != 24 {
		t.Fatalf("profile length = %d, want 24", len(profile))
	}
	if !profile[10].Valid || profile[10].Val != 15.0 {
		t.Fatalf("hour 10 mean = %+v, want 15", profile[10])
	}
	if !profile[23].Valid || profile[23].Val != 40.0 {
		t.Fatalf("hour 23 mean = %+v, want 40", profile[23])
	}
	if profile[0].Valid {
		t.Fatalf("hour 0 should be null")
	}
}

func TestWeekdayProfileMondayFirst(t *testing.T) {
	// 2025-01-01 is a Wednesday, 2025-01-06 a Monday
	f, series := demandFrame(t, []map[string]any{
		{"data_inc": "2025-01-01T10:00:00", "potencia_ativa_tot": 30.0},
		{"data_inc": "2025-01-06T10:00:00", "potencia_ativa_tot": 10.0},
	})
	profile := analysis.WeekdayProfile(f, series)
	if len(profile) != 7 {
		t.Fatalf("profile length = %d, want 7", len(profile))
	}
	if !profile[0].Valid || profile[0].Val != 10.0 {
		t.Fatalf("Monday slot = %+v, want 10", profile[0])
	}
	if !profile[2].Valid || profile[2].Val != 30.0 {
		t.Fatalf("Wednesday slot = %+v, want 30", profile[2])
	}
	if profile[6].Valid {
		t.Fatalf("Sunday should be null")
	}
}

func TestProfilesNilWithoutUsableSamples(t *testing.T) {
	f, series := demandFrame(t, []map[string]any{
		{"data_inc": "bogus", "potencia_ativa_tot": 10.0},
	})
	if p := analysis.HourlyProfile(f, series); p != nil {
		t.Fatalf("hourly profile should be nil, got %v", p)
	}
	if p := analysis.WeekdayProfile(f, series); p != nil {
		t.Fatalf("weekday profile should be nil, got %v", p)
	}
}

func TestTopPeaks(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []analysis.AggPoint{
		{When: base, Mean: 10},
		{When: base.Add(time.Hour), Mean: 30},
		{When: base.Add(2 * time.Hour), Mean: 20},
		{When: base.Add(3 * time.Hour), Mean: 30},
	}
	peaks := analysis.TopPeaks(series, 2)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(peaks))
	}
	if peaks[0].Mean != 30 || peaks[1].Mean != 30 {
		t.Fatalf("peaks wrong: %v", peaks)
	}
	// ties keep chronological order
	if !peaks[0].When.Before(peaks[1].When) {
		t.Fatalf("tie order not chronological: %v", peaks)
	}
}
