package domain

import (
	"fmt"
	"time"
)

// ClockWindow is a half-open [From, To) interval in minutes of the day,
// evaluated in the pharmacy's fixed civil timezone. A window ending at
// 13:00 excludes the instant exactly at 13:00.
type ClockWindow struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// NewClockWindow builds a window from two HH:MM clock strings.
func NewClockWindow(from, to string) (ClockWindow, error) {
	fromMinute, err := parseClockMinute(from)
	if err != nil {
		return ClockWindow{}, err
	}
	toMinute, err := parseClockMinute(to)
	if err != nil {
		return ClockWindow{}, err
	}
	return ClockWindow{From: fromMinute, To: toMinute}, nil
}

// MustClockWindow is NewClockWindow for static rule tables, where a bad
// clock string is a programming error.
func MustClockWindow(from, to string) ClockWindow {
	window, err := NewClockWindow(from, to)
	if err != nil {
		panic(err)
	}
	return window
}

func parseClockMinute(clock string) (int, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("failed to parse clock time %q: %v", clock, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// TenantWindows maps a tenant id to the open windows it keeps on an
// otherwise blocked date. A tenant absent from the map is fully closed
// that date.
type TenantWindows map[string][]ClockWindow

// HolidaySchedule maps a YYYY-MM-DD calendar date (in the pharmacy's
// operating timezone) to per-tenant exception windows. A date absent
// from the map is an ordinary date.
type HolidaySchedule map[string]TenantWindows

// TenantRules carries the recurring restrictions of the one designated
// tenant. Any other tenant id falls through with no recurring rule.
type TenantRules struct {
	// Designated is the tenant the lunch blackout and Saturday service
	// gating apply to.
	Designated string

	// LunchWindows blocks weekday slots, Mon-Fri.
	LunchWindows []ClockWindow

	// SaturdayServices is the allow-list of service ids the designated
	// tenant still takes on Saturdays. Any other service loses all
	// Saturday slots.
	SaturdayServices []string
}

// RuleSet is the process-wide read-only rule configuration. It is built
// once at startup and shared by reference, nothing mutates it at
// runtime.
type RuleSet struct {
	// Location is the pharmacy's fixed operating timezone. All
	// calendar-date and minute-of-day classification happens here,
	// never in UTC or the viewer's local zone.
	Location *time.Location

	Holidays HolidaySchedule
	Tenants  TenantRules
}

// DefaultHolidaySchedule is the statutory closure table. Unite Pharmacy
// (the designated tenant) runs a reduced afternoon clinic on Anzac Day
// and the January 2nd holiday.
func DefaultHolidaySchedule(designatedTenant string) HolidaySchedule {
	return HolidaySchedule{
		"2026-01-01": TenantWindows{},
		"2026-01-02": TenantWindows{
			designatedTenant: {MustClockWindow("09:00", "13:00")},
		},
		"2026-02-06": TenantWindows{},
		"2026-04-25": TenantWindows{
			designatedTenant: {MustClockWindow("13:00", "17:30")},
		},
		"2026-12-25": TenantWindows{},
		"2026-12-26": TenantWindows{},
	}
}

// DefaultLunchWindows is the shared staff lunch break of the designated
// tenant, [12:00, 13:00) on weekdays.
func DefaultLunchWindows() []ClockWindow {
	return []ClockWindow{MustClockWindow("12:00", "13:00")}
}
