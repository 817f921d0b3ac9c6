package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/CHB-BookingService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(requestDate time.Time, now time.Time) error {
	if scheduling.IsPastDay(requestDate, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	return nil
}
