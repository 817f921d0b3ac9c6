// Package scheduling is the booking availability and conflict-resolution
// core: the business-hours slot grid, the interval conflict checker and the
// month-level availability aggregator. It is pure computation over in-memory
// data: no I/O, no logging, no clock access beyond what callers inject.
package scheduling

import (
	"fmt"

	"github.com/m04kA/CHB-BookingService/pkg/types"
)

// DayLengthMinutes is the exclusive upper bound for minute-of-day values.
const DayLengthMinutes = 24 * 60

// TimeSlot is a half-open interval [Start, End) on a single calendar day,
// measured in minutes since midnight.
type TimeSlot struct {
	Start int
	End   int
}

// DurationLimits bounds the length of a bookable interval, in minutes.
type DurationLimits struct {
	Min int
	Max int
}

// NewTimeSlot builds a validated TimeSlot from minute-of-day values.
// Invariant: 0 <= start < end <= DayLengthMinutes, with the interval length
// inside limits.
func NewTimeSlot(start, end int, limits DurationLimits) (TimeSlot, error) {
	if start < 0 || end > DayLengthMinutes {
		return TimeSlot{}, fmt.Errorf("%w: interval [%d, %d) outside day bounds", ErrInvalidDuration, start, end)
	}
	if end <= start {
		return TimeSlot{}, fmt.Errorf("%w: end (%d) must be after start (%d)", ErrInvalidDuration, end, start)
	}
	d := end - start
	if d < limits.Min || d > limits.Max {
		return TimeSlot{}, fmt.Errorf("%w: duration %dm outside [%dm, %dm]", ErrInvalidDuration, d, limits.Min, limits.Max)
	}
	return TimeSlot{Start: start, End: end}, nil
}

// ParseTimeSlot builds a validated TimeSlot from "HH:MM" strings.
func ParseTimeSlot(start, end string, limits DurationLimits) (TimeSlot, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: start %q", ErrInvalidTimeFormat, start)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: end %q", ErrInvalidTimeFormat, end)
	}
	return NewTimeSlot(s.Minutes(), e.Minutes(), limits)
}

// Duration returns the interval length in minutes.
func (s TimeSlot) Duration() int {
	return s.End - s.Start
}

// StartTime returns the interval start as a TimeString.
func (s TimeSlot) StartTime() types.TimeString {
	return types.FromMinutes(s.Start)
}

// EndTime returns the interval end as a TimeString.
func (s TimeSlot) EndTime() types.TimeString {
	return types.FromMinutes(s.End)
}

// String renders the interval as "HH:MM-HH:MM".
func (s TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", s.StartTime(), s.EndTime())
}
