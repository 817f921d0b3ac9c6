package domain

import (
	"time"

	"github.com/m04kA/CHB-BookingService/internal/scheduling"
)

// VenueSlotsConfig represents the booking configuration for a venue.
// Supports two-level configuration:
// 1. Venue-specific (venue_id set)
// 2. Campus-wide default (venue_id NULL)
// Lookup falls back venue -> default -> compiled-in constants.
type VenueSlotsConfig struct {
	ID      int64
	VenueID *int64 // NULL = campus-wide default

	// Business-hours grid
	GridStartHour       int
	GridEndHour         int
	GridEndMinute       int
	GridIntervalMinutes int

	// Booking duration limits
	MinBookingMinutes int
	MaxBookingMinutes int

	// RequiresApproval controls the initial status of a new booking:
	// true -> pending until an admin confirms, false -> confirmed at once.
	// This is intentional per-venue policy, not an inconsistency:
	// conference halls, labs and the convention center require approval
	// while the video-conference and MBA seminar halls auto-confirm.
	RequiresApproval bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Grid returns the business-hours grid described by the config.
func (c *VenueSlotsConfig) Grid() scheduling.GridConfig {
	return scheduling.GridConfig{
		StartHour:       c.GridStartHour,
		EndHour:         c.GridEndHour,
		EndMinute:       c.GridEndMinute,
		IntervalMinutes: c.GridIntervalMinutes,
	}
}

// Limits returns the booking duration limits described by the config.
func (c *VenueSlotsConfig) Limits() scheduling.DurationLimits {
	return scheduling.DurationLimits{
		Min: c.MinBookingMinutes,
		Max: c.MaxBookingMinutes,
	}
}

// IsDefaultConfig returns true if this is the campus-wide default row.
func (c *VenueSlotsConfig) IsDefaultConfig() bool {
	return c.VenueID == nil
}

// DefaultVenueSlotsConfig returns the compiled-in fallback used when the
// venue has no stored configuration at all.
func DefaultVenueSlotsConfig() *VenueSlotsConfig {
	return &VenueSlotsConfig{
		GridStartHour:       DefaultGridStartHour,
		GridEndHour:         DefaultGridEndHour,
		GridEndMinute:       DefaultGridEndMinute,
		GridIntervalMinutes: DefaultGridIntervalMinutes,
		MinBookingMinutes:   DefaultMinBookingMinutes,
		MaxBookingMinutes:   DefaultMaxBookingMinutes,
		RequiresApproval:    true,
	}
}
