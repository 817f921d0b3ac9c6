package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func mustSlot(t *testing.T, start, end string) TimeSlot {
	t.Helper()
	s, err := ParseTimeSlot(start, end, DurationLimits{Min: 1, Max: DayLengthMinutes})
	require.NoError(t, err)
	return s
}

func TestComputeFullyBookedDates_GridGapStaysAvailable(t *testing.T) {
	// 09:00-12:00 and 12:30-16:30 leave exactly one atomic slot free
	// (12:00-12:30), so the date must NOT be reported as fully booked even
	// though no practical meeting fits the gap.
	bookings := []DayBooking{
		{Date: day("2026-09-10"), Slot: mustSlot(t, "09:00", "12:00")},
		{Date: day("2026-09-10"), Slot: mustSlot(t, "12:30", "16:30")},
	}

	full := ComputeFullyBookedDates(defaultGrid(), bookings, day("2026-09-01"))
	assert.Empty(t, full)
}

func TestComputeFullyBookedDates_WholeDayBooking(t *testing.T) {
	bookings := []DayBooking{
		{Date: day("2026-09-10"), Slot: mustSlot(t, "09:00", "16:30")},
	}

	// A single booking spanning the whole grid marks the day fully booked:
	// the trailing 16:30 boundary mark is clipped to zero width for the
	// month aggregation and holds no bookable time of its own.
	full := ComputeFullyBookedDates(defaultGrid(), bookings, day("2026-09-01"))
	require.Len(t, full, 1)
	assert.Equal(t, "2026-09-10", full[0])
}

func TestComputeFullyBookedDates_MultipleDates(t *testing.T) {
	bookings := []DayBooking{
		// fully covered by two adjacent bookings
		{Date: day("2026-09-11"), Slot: mustSlot(t, "09:00", "13:00")},
		{Date: day("2026-09-11"), Slot: mustSlot(t, "13:00", "17:00")},
		// single short booking leaves most of the grid free
		{Date: day("2026-09-12"), Slot: mustSlot(t, "10:00", "11:00")},
		// a second fully booked date, out of input order
		{Date: day("2026-09-05"), Slot: mustSlot(t, "09:00", "17:00")},
	}

	full := ComputeFullyBookedDates(defaultGrid(), bookings, day("2026-09-01"))
	assert.Equal(t, []string{"2026-09-05", "2026-09-11"}, full)
}

func TestComputeFullyBookedDates_PastDatesExcluded(t *testing.T) {
	bookings := []DayBooking{
		{Date: day("2026-09-05"), Slot: mustSlot(t, "09:00", "17:00")},
		{Date: day("2026-09-20"), Slot: mustSlot(t, "09:00", "17:00")},
	}

	full := ComputeFullyBookedDates(defaultGrid(), bookings, day("2026-09-10"))
	assert.Equal(t, []string{"2026-09-20"}, full)
}

func TestComputeFullyBookedDates_NoBookings(t *testing.T) {
	assert.Empty(t, ComputeFullyBookedDates(defaultGrid(), nil, day("2026-09-01")))
}

func TestComputeFullyBookedDates_TimeOfDayStripped(t *testing.T) {
	// Bookings whose date field carries a time-of-day component still group
	// into the same UTC calendar day.
	late := day("2026-09-11").Add(23*time.Hour + 45*time.Minute)
	bookings := []DayBooking{
		{Date: day("2026-09-11"), Slot: mustSlot(t, "09:00", "13:00")},
		{Date: late, Slot: mustSlot(t, "13:00", "17:00")},
	}

	full := ComputeFullyBookedDates(defaultGrid(), bookings, day("2026-09-01"))
	assert.Equal(t, []string{"2026-09-11"}, full)
}

func TestIsSlotAvailable_IntervalBased(t *testing.T) {
	existing := []TimeSlot{mustSlot(t, "10:00", "11:00")}

	// Non-grid-aligned candidate still collides with the 10:00-11:00 booking.
	assert.False(t, IsSlotAvailable(mustSlot(t, "10:15", "10:45"), existing))

	// Exact back-to-back: touching endpoints never conflict.
	assert.True(t, IsSlotAvailable(mustSlot(t, "11:00", "11:30"), existing))
	assert.True(t, IsSlotAvailable(mustSlot(t, "09:30", "10:00"), existing))
}

func TestFreeGridSlots(t *testing.T) {
	occupied := []TimeSlot{
		mustSlot(t, "09:00", "12:00"),
		mustSlot(t, "12:30", "17:00"),
	}

	free := FreeGridSlots(defaultGrid(), occupied)
	require.Len(t, free, 1)
	assert.Equal(t, "12:00", free[0].StartTime().String())
}
