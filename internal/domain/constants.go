package domain

// Default business-hours grid. Campus halls are bookable from 09:00 with a
// slot mark every 30 minutes up to and including 16:30.
const (
	DefaultGridStartHour       = 9
	DefaultGridEndHour         = 16
	DefaultGridEndMinute       = 30
	DefaultGridIntervalMinutes = 30
)

// Booking duration limits.
const (
	DefaultMinBookingMinutes = 30
	DefaultMaxBookingMinutes = 480 // 8 hours
)

// Business validation constants for venue slot configs.
const (
	MinGridIntervalMinutes      = 5
	MaxGridIntervalMinutes      = 120
	MaxPurposeLength            = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// InactiveStatuses список статусов, не участвующих в расчёте доступности
// Отменённые и отклонённые бронирования освобождают слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRejected,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
