package availability_service

import (
	"testing"
	"time"
)

func TestFormatClockTimeInPharmacyZone(t *testing.T) {
	loc := mustLoadAuckland(t)

	// 21:30 UTC on June 1st is 09:30 the next morning in Auckland
	instant := time.Date(2026, time.June, 1, 21, 30, 0, 0, time.UTC)
	if got := FormatClockTime(instant, loc); got != "9:30 AM" {
		t.Fatalf("expected 9:30 AM, got %q", got)
	}

	afternoon := time.Date(2026, time.June, 3, 2, 5, 0, 0, time.UTC)
	if got := FormatClockTime(afternoon, loc); got != "2:05 PM" {
		t.Fatalf("expected 2:05 PM, got %q", got)
	}
}

func TestFormatLongDateInPharmacyZone(t *testing.T) {
	loc := mustLoadAuckland(t)

	instant := time.Date(2026, time.June, 1, 21, 30, 0, 0, time.UTC)
	if got := FormatLongDate(instant, loc); got != "Tuesday, 2 June 2026" {
		t.Fatalf("expected Tuesday, 2 June 2026, got %q", got)
	}
}
