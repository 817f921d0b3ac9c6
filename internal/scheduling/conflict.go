package scheduling

// Overlaps reports whether two half-open intervals on the same day overlap.
// The comparison is strict: touching endpoints (one interval ending exactly
// when the other starts) do NOT conflict, so back-to-back bookings are
// always allowed. Symmetric in its arguments.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// SlotsOverlap is Overlaps for two TimeSlot values.
func SlotsOverlap(a, b TimeSlot) bool {
	return Overlaps(a.Start, a.End, b.Start, b.End)
}

// HasConflict reports whether the candidate interval overlaps at least one
// member of existing. Short-circuits on the first conflict; the order of
// existing does not affect the result.
func HasConflict(candidate TimeSlot, existing []TimeSlot) bool {
	for _, s := range existing {
		if SlotsOverlap(candidate, s) {
			return true
		}
	}
	return false
}

// FindConflict returns the first member of existing that overlaps the
// candidate, for diagnostic display. The second result is false when the
// candidate is free.
func FindConflict(candidate TimeSlot, existing []TimeSlot) (TimeSlot, bool) {
	for _, s := range existing {
		if SlotsOverlap(candidate, s) {
			return s, true
		}
	}
	return TimeSlot{}, false
}
