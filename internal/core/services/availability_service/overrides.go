package availability_service

import (
	"slices"

	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
)

// applyOverrides produces a new calendar with the same shape and order
// as the input, flagging slots unavailable per the rule tables. Rules
// only ever narrow availability: a slot that comes in unavailable never
// becomes available again.
//
// Precedence per slot:
//  1. Holiday closure (final for the slots it covers)
//  2. Tenant-specific holiday exception windows (escape the closure,
//     but fall through to the recurring rules)
//  3. Tenant recurring rules (lunch blackout, Saturday gating)
func applyOverrides(rules *domain.RuleSet, calendar domain.Calendar, tenantID, serviceID string) domain.Calendar {
	adjusted := make(domain.Calendar, 0, len(calendar))

	for _, day := range calendar {
		adjustedDay := domain.DayAvailability{
			Date:      day.Date,
			TimeSlots: make([]domain.TimeSlot, 0, len(day.TimeSlots)),
		}

		for _, slot := range day.TimeSlots {
			adjustedDay.TimeSlots = append(adjustedDay.TimeSlots, applySlotOverrides(rules, slot, tenantID, serviceID))
		}

		adjusted = append(adjusted, adjustedDay)
	}

	return adjusted
}

func applySlotOverrides(rules *domain.RuleSet, slot domain.TimeSlot, tenantID, serviceID string) domain.TimeSlot {
	// Classify the slot in the pharmacy's civil time, not UTC and not
	// the viewer's zone
	local := slot.StartTime.Date.In(rules.Location)
	day := local.Format("2006-01-02")
	minute := local.Hour()*60 + local.Minute()

	if tenantWindows, blocked := rules.Holidays[day]; blocked {
		allowed := tenantWindows[tenantID]
		if !minuteOfDayInWindow(minute, allowed) {
			// Holiday closure is final, recurring rules are not reached
			slot.Available = false
			return slot
		}
		// Inside an allowed window the slot escapes the closure and is
		// still subject to the recurring rules below
	}

	switch tenantID {
	case rules.Tenants.Designated:
		weekday := isoWeekday(local)

		// Lunch blackout on weekdays
		if weekday >= 1 && weekday <= 5 && minuteOfDayInWindow(minute, rules.Tenants.LunchWindows) {
			slot.Available = false
		}

		// Saturday slots only for allow-listed services
		if weekday == 6 && !slices.Contains(rules.Tenants.SaturdayServices, serviceID) {
			slot.Available = false
		}
	default:
		// Unknown or rule-free tenants fail open: no recurring
		// restriction applies
	}

	return slot
}
