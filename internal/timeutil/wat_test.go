package timeutil

import (
	"testing"
	"time"
)

func TestParseInWAT(t *testing.T) {
	got, err := ParseInWAT(DateLayout, "2026-03-15")
	if err != nil {
		t.Fatalf("ParseInWAT: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("parsed %v", got)
	}
	_, offset := got.Zone()
	if offset != 3600 {
		t.Errorf("offset = %d, want 3600", offset)
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	// 23:30 UTC is already the next day in WAT
	utc := time.Date(2026, 5, 10, 23, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	if start.Day() != 11 || start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("StartOfDay = %v", start)
	}

	end := EndOfDay(utc)
	if end.Day() != 11 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("EndOfDay = %v", end)
	}
}
