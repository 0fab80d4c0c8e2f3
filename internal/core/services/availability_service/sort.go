package availability_service

import "github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"

type SlotSlice []domain.TimeSlot

// stableSort orders slots ascending by start instant with a merge sort.
// Slots with identical start instants keep their relative input order,
// which the plain quicksort used elsewhere would not guarantee.
func (s SlotSlice) stableSort() SlotSlice {
	if len(s) < 2 {
		return s
	}

	mid := len(s) / 2
	left := make(SlotSlice, mid)
	right := make(SlotSlice, len(s)-mid)
	copy(left, s[:mid])
	copy(right, s[mid:])

	return merge(left.stableSort(), right.stableSort())
}

func merge(left, right SlotSlice) SlotSlice {
	merged := make(SlotSlice, 0, len(left)+len(right))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		// On ties the left element wins, keeping the sort stable
		if !right[j].StartTime.Date.Before(left[i].StartTime.Date) {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}

	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)

	return merged
}
