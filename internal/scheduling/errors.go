package scheduling

import "errors"

var (
	// ErrInvalidTimeFormat is returned for malformed "HH:MM" input
	ErrInvalidTimeFormat = errors.New("scheduling: invalid time format")

	// ErrInvalidDuration is returned when end <= start or the interval
	// length is outside the configured booking duration limits
	ErrInvalidDuration = errors.New("scheduling: invalid slot duration")

	// ErrSlotConflict is returned when a candidate interval overlaps an
	// existing active booking
	ErrSlotConflict = errors.New("scheduling: time slot already booked")
)
