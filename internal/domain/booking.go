package domain

import (
	"time"

	"github.com/m04kA/CHB-BookingService/internal/scheduling"
	"github.com/m04kA/CHB-BookingService/pkg/types"
)

// BookingStatus represents the status of a hall booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a hall booking in the system
type Booking struct {
	ID        int64
	Reference string // user-facing booking reference (uuid)
	UserID    int64
	VenueID   int64

	BookingDate time.Time // calendar day, stored as UTC midnight
	StartTime   types.TimeString
	EndTime     types.TimeString

	Purpose   string
	Attendees int

	Status   BookingStatus
	IsActive bool // soft-delete flag; cancellation keeps the row

	// Denormalized requester data for admin listings and notifications
	UserName   string
	UserEmail  string
	Department *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the occupied interval in minutes since midnight.
func (b *Booking) Slot() scheduling.TimeSlot {
	return scheduling.TimeSlot{Start: b.StartTime.Minutes(), End: b.EndTime.Minutes()}
}

// DurationMinutes returns the booked interval length in minutes.
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// OccupiesSlot reports whether the booking participates in availability
// computation: not soft-deleted and not in a released status.
func (b *Booking) OccupiesSlot() bool {
	if !b.IsActive {
		return false
	}
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive && (b.Status == StatusPending || b.Status == StatusConfirmed)
}

// CanBeApproved returns true if an admin decision is still pending.
func (b *Booking) CanBeApproved() bool {
	return b.IsActive && b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can be marked as held.
func (b *Booking) CanBeCompleted() bool {
	return b.IsActive && b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled or rejected.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled || b.Status == StatusRejected
}

// VenueBookingsFilter фильтр для выборки бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и отклонённые
}
