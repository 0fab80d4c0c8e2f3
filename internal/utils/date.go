package utils

import (
	"fmt"
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
)

const DayKeyLayout = "2006-01-02"

// DayKey renders an instant as the normalized YYYY-MM-DD calendar date
// it falls on in the given timezone.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// StartCurrentDay returns the same date with the time set to 00:00,
// keeping the timezone.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay returns the next date with the time set to 00:00,
// keeping the timezone.
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}

// ParseDate parses an RFC3339 date, falling back to date-with-time and
// plain-date forms without a timezone, interpreted in the configured
// pharmacy timezone.
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		location := config.TimeZone
		if location == nil {
			location = time.UTC
		}
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			parsedDate, err = time.ParseInLocation(DayKeyLayout, str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}
