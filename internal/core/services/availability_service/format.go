package availability_service

import "time"

// Display helpers for the booking UI. Both always render in the
// pharmacy's fixed civil timezone, whatever zone the instant carries.

// FormatClockTime renders a slot instant as e.g. "9:30 AM".
func FormatClockTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("3:04 PM")
}

// FormatLongDate renders a slot instant as e.g. "Monday, 1 June 2026".
func FormatLongDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Monday, 2 January 2006")
}
