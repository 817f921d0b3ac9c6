package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat is returned when a value does not match "HH:MM"
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange is returned when arithmetic leaves the [00:00, 23:59] range
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TimeString is a wall-clock time of day ("HH:MM") used for booking slots.
// The canonical form is zero-padded ("09:00"); single-digit hours are
// accepted on input and normalized.
type TimeString string

// NewTimeString truncates t to minute precision and returns its TimeString.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and normalizes s, validating the format.
func NewTimeStringFromString(s string) (TimeString, error) {
	if !timePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	ts := TimeString(s)
	return FromMinutes(ts.Minutes()), nil
}

// FromMinutes builds a TimeString from a minute-of-day value.
// The value is taken modulo a day; callers guard range themselves.
func FromMinutes(m int) TimeString {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// Validate reports whether the value matches the "HH:MM" format.
func (t TimeString) Validate() error {
	if !timePattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes converts the value to minutes since midnight.
// Returns 0 for values that fail Validate; constructors validate eagerly,
// so a stored TimeString is always convertible.
func (t TimeString) Minutes() int {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h*60 + m
}

// AddMinutes returns the time shifted by the given number of minutes.
// Only shifts that stay within the same day are valid: the booking day is a
// closed world and midnight rollover is not supported.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	total := t.Minutes() + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s + %dm", ErrTimeOutOfRange, t, minutes)
	}
	return FromMinutes(total), nil
}

// IsBefore reports whether t is strictly earlier in the day than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later in the day than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// String returns the canonical "HH:MM" form.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer so the type can be stored in a TIME column.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres returns TIME columns as
// "HH:MM:SS"; the seconds component is dropped.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
