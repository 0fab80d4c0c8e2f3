package availability_service

import (
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
)

// minuteOfDayInWindow reports whether a minute of the day (0..1439)
// falls in at least one window. Windows are half-open [from, to), so a
// window ending at 13:00 excludes the instant exactly at 13:00. An
// empty window set never matches.
func minuteOfDayInWindow(minute int, windows []domain.ClockWindow) bool {
	for _, window := range windows {
		if minute >= window.From && minute < window.To {
			return true
		}
	}
	return false
}

// isoWeekday numbers days Mon=1 .. Sun=7, unlike time.Weekday where
// Sunday is 0.
func isoWeekday(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}
