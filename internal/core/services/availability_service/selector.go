package availability_service

import (
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
	"github.com/suchimauz/pharmacy-booking-availability/internal/utils"
)

// Slots starting within this lead time of "now" are not offered when
// the selected date is today.
const sameDayLeadTime = time.Hour

// selectSlots extracts the bookable slots of the selected date. Every
// degenerate input (no date, no matching day, nothing available) yields
// an empty slice rather than an error, the booking UI renders all of
// them as "no slots available".
func selectSlots(selectedDate string, calendar domain.Calendar, now time.Time, loc *time.Location) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	if selectedDate == "" {
		return slots
	}

	var day *domain.DayAvailability
	for i := range calendar {
		if calendar[i].Date.Key() == selectedDate {
			day = &calendar[i]
			break
		}
	}
	if day == nil {
		return slots
	}

	// The one-hour cutoff only applies when the selected date is the
	// current pharmacy-local date. Other dates are trusted to be in the
	// future.
	sameDay := selectedDate == utils.DayKey(now, loc)
	cutoff := now.Add(sameDayLeadTime)

	for _, slot := range day.TimeSlots {
		if !slot.Available {
			continue
		}
		// Strictly more than one hour away: a slot exactly on the
		// cutoff is excluded
		if sameDay && !slot.StartTime.Date.After(cutoff) {
			continue
		}
		slots = append(slots, slot)
	}

	return SlotSlice(slots).stableSort()
}
