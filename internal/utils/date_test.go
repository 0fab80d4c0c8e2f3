package utils

import (
	"testing"
	"time"
)

func TestDayKeyCrossesMidnightInZone(t *testing.T) {
	loc, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 13:30 UTC on June 1st is already June 2nd in Auckland (+12)
	instant := time.Date(2026, 6, 1, 13, 30, 0, 0, time.UTC)
	if got := DayKey(instant, loc); got != "2026-06-02" {
		t.Fatalf("expected 2026-06-02, got %s", got)
	}
	if got := DayKey(instant, time.UTC); got != "2026-06-01" {
		t.Fatalf("expected 2026-06-01, got %s", got)
	}
}

func TestStartCurrentDay(t *testing.T) {
	loc := time.FixedZone("+12", 12*60*60)
	instant := time.Date(2026, 6, 1, 15, 45, 12, 0, loc)

	start := StartCurrentDay(instant)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("expected midnight, got %s", start)
	}
	if start.Location() != loc {
		t.Fatalf("expected timezone to be kept")
	}
}

func TestStartNextDay(t *testing.T) {
	loc := time.FixedZone("+12", 12*60*60)
	instant := time.Date(2026, 6, 1, 23, 59, 0, 0, loc)

	next := StartNextDay(instant)
	if next.Day() != 2 || next.Hour() != 0 {
		t.Fatalf("expected midnight June 2nd, got %s", next)
	}
}

func TestParseDateForms(t *testing.T) {
	if _, err := ParseDate("2026-06-01T11:00:00+12:00"); err != nil {
		t.Fatalf("RFC3339 parse error: %v", err)
	}
	if _, err := ParseDate("2026-06-01T11:00:00"); err != nil {
		t.Fatalf("timezone-less parse error: %v", err)
	}
	if _, err := ParseDate("2026-06-01"); err != nil {
		t.Fatalf("plain date parse error: %v", err)
	}
	if _, err := ParseDate("june first"); err == nil {
		t.Fatalf("expected parse error")
	}
}
