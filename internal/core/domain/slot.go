package domain

import (
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/json_types"
)

// TimeSlot is a single bookable interval advertised by a pharmacy.
// Once produced by the override engine it is treated as immutable,
// the selector only filters and orders slots.
type TimeSlot struct {
	StartTime json_types.DateTime `json:"startTime"`
	EndTime   json_types.DateTime `json:"endTime"`
	Available bool                `json:"available"`
}

// DayAvailability lists the advertised slots of one calendar date.
// Date is unique within a Calendar, the upstream feed is responsible
// for deduplication.
type DayAvailability struct {
	Date      json_types.Date `json:"date"`
	TimeSlots []TimeSlot      `json:"timeSlots"`
}

// Calendar is the full per-date slot listing of one tenant, ordered by
// date. It is supplied fresh per availability query and never mutated,
// the override engine always returns a new value.
type Calendar []DayAvailability
