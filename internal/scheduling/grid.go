package scheduling

// GridConfig describes the fixed business-hours grid of atomic slots for a
// venue day. The grid is derived, never stored: it is recomputed per query
// and identical for every date unless the venue overrides it.
type GridConfig struct {
	StartHour       int
	EndHour         int
	EndMinute       int
	IntervalMinutes int
}

// startMinute returns the first slot mark in minutes since midnight.
func (g GridConfig) startMinute() int {
	return g.StartHour * 60
}

// endMinute returns the last allowed slot start in minutes since midnight.
func (g GridConfig) endMinute() int {
	return g.EndHour*60 + g.EndMinute
}

// BookableWindow returns the interval a booking must fit into: from the
// first slot mark through the end of the last atomic slot ([09:00, 17:00)
// for the default grid).
func (g GridConfig) BookableWindow() TimeSlot {
	return TimeSlot{Start: g.startMinute(), End: g.endMinute() + g.IntervalMinutes}
}

// GenerateDaySlots enumerates the atomic grid slots for one day: a slot
// starts at every IntervalMinutes mark from StartHour:00 through
// EndHour:EndMinute inclusive. Each atomic slot spans one interval, so the
// final slot's end may lie past the boundary ([16:30, 17:00) for the
// default grid). Deterministic, pure function of the configuration.
func GenerateDaySlots(g GridConfig) []TimeSlot {
	if g.IntervalMinutes <= 0 {
		return nil
	}

	last := g.endMinute()
	if last < g.startMinute() {
		return nil
	}
	slots := make([]TimeSlot, 0, (last-g.startMinute())/g.IntervalMinutes+1)

	for start := g.startMinute(); start <= last; start += g.IntervalMinutes {
		end := start + g.IntervalMinutes
		if end > DayLengthMinutes {
			break
		}
		slots = append(slots, TimeSlot{Start: start, End: end})
	}

	return slots
}
