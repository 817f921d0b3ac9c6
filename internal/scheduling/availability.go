package scheduling

import (
	"sort"
	"time"
)

// DayBooking is the slice of a booking the availability computation needs:
// its calendar day and its occupied interval. Callers must pass only active
// bookings; cancelled or soft-deleted rows free the slot and never reach
// this package.
type DayBooking struct {
	Date time.Time
	Slot TimeSlot
}

// IsSlotAvailable reports whether the candidate interval is free given the
// existing active bookings for the same venue and date. The check is
// interval-based, not grid-quantized: an arbitrary candidate such as
// 09:15-09:45 is compared directly against existing bookings even though
// the UI only offers grid-aligned starts. This asymmetry with the
// grid-based month aggregation below is intentional.
func IsSlotAvailable(candidate TimeSlot, existing []TimeSlot) bool {
	return !HasConflict(candidate, existing)
}

// FreeGridSlots returns the atomic grid slots not overlapped by any of the
// given occupied intervals. Used for the per-date slot listing shown to
// users; each slot spans one full interval.
func FreeGridSlots(grid GridConfig, occupied []TimeSlot) []TimeSlot {
	free := make([]TimeSlot, 0)
	for _, slot := range GenerateDaySlots(grid) {
		if !HasConflict(slot, occupied) {
			free = append(free, slot)
		}
	}
	return free
}

// hasFreeAggregationSlot decides whether any bookable time remains on a day
// for the purposes of the month-level calendar. Atomic slots are clipped at
// the grid end boundary here, so the trailing boundary mark (a zero-width
// slot at 16:30 on the default grid) holds no bookable time and never keeps
// a day available: a single booking spanning 09:00-16:30 fully books the
// day.
func hasFreeAggregationSlot(grid GridConfig, occupied []TimeSlot) bool {
	boundary := grid.endMinute()
	for _, slot := range GenerateDaySlots(grid) {
		if slot.End > boundary {
			slot.End = boundary
		}
		if slot.Start >= slot.End {
			continue
		}
		if !HasConflict(slot, occupied) {
			return true
		}
	}
	return false
}

// ComputeFullyBookedDates returns the sorted set of ISO day strings
// ("YYYY-MM-DD") on which every atomic grid slot is covered by at least one
// booking. Dates with zero bookings are implicitly available and never
// reported. Days strictly before today (UTC, date-only) are excluded here,
// once, rather than by every caller.
//
// "Fully booked" is decided per atomic grid slot, not per contiguous gap:
// bookings covering 09:00-12:00 and 12:30-16:30 leave the 12:00-12:30 slot
// free, so the date is reported as available even though no practical
// meeting fits. This grid-coverage semantic is load-bearing for the
// calendar UI and must not be replaced with gap analysis.
func ComputeFullyBookedDates(grid GridConfig, bookings []DayBooking, today time.Time) []string {
	byDay := make(map[string][]TimeSlot)
	for _, b := range bookings {
		key := DayKey(b.Date)
		byDay[key] = append(byDay[key], b.Slot)
	}

	full := make([]string, 0)
	for key, occupied := range byDay {
		day, err := time.ParseInLocation("2006-01-02", key, time.UTC)
		if err != nil {
			continue
		}
		if IsPastDay(day, today) {
			continue
		}
		if !hasFreeAggregationSlot(grid, occupied) {
			full = append(full, key)
		}
	}

	sort.Strings(full)
	return full
}
