package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	"github.com/m04kA/CHB-BookingService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что интервал времени указан
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}
	if len(req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if req.Attendees <= 0 {
		return fmt.Errorf("%w: attendees must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if scheduling.IsPastDay(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// buildRequestedSlot строит интервал бронирования с учетом лимитов конфигурации
func buildRequestedSlot(req *Request, config *domain.VenueSlotsConfig) (scheduling.TimeSlot, error) {
	if req.EndTime.Minutes() <= req.StartTime.Minutes() {
		return scheduling.TimeSlot{}, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidTimeSlot)
	}

	slot, err := scheduling.NewTimeSlot(req.StartTime.Minutes(), req.EndTime.Minutes(), config.Limits())
	if errors.Is(err, scheduling.ErrInvalidDuration) {
		return scheduling.TimeSlot{}, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, config.MinBookingMinutes, config.MaxBookingMinutes)
	}
	if err != nil {
		return scheduling.TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	return slot, nil
}

// validateWithinBusinessHours проверяет, что интервал лежит внутри рабочих часов
func validateWithinBusinessHours(slot scheduling.TimeSlot, grid scheduling.GridConfig) error {
	window := grid.BookableWindow()
	if slot.Start < window.Start || slot.End > window.End {
		return fmt.Errorf("%w: bookable window is %s-%s",
			ErrOutsideBusinessHours, window.StartTime(), window.EndTime())
	}
	return nil
}

// occupiedSlots собирает интервалы активных бронирований
func occupiedSlots(bookings []*domain.Booking) []scheduling.TimeSlot {
	occupied := make([]scheduling.TimeSlot, 0, len(bookings))
	for _, b := range bookings {
		if !b.OccupiesSlot() {
			continue
		}
		occupied = append(occupied, b.Slot())
	}
	return occupied
}
