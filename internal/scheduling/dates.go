package scheduling

import "time"

// Calendar days are normalized to UTC midnight everywhere a day is derived
// from a timestamp. A single normalization point avoids the classic bug
// where a booking near midnight groups into the adjacent day depending on
// the server timezone.

// NormalizeDate strips the time-of-day component, interpreting the instant
// in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey returns the ISO calendar-day string ("YYYY-MM-DD") for grouping.
func DayKey(t time.Time) string {
	return NormalizeDate(t).Format("2006-01-02")
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// IsPastDay reports whether date falls on a UTC calendar day strictly
// before today.
func IsPastDay(date, today time.Time) bool {
	return NormalizeDate(date).Before(NormalizeDate(today))
}
