package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrVenueInactive возвращается, когда площадка выведена из эксплуатации
	ErrVenueInactive = errors.New("create_booking: venue is not active")

	// ErrUserNotFound возвращается, когда пользователь не найден в справочнике
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается при некорректном интервале времени
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidDuration возвращается при нарушении лимитов длительности
	ErrInvalidDuration = errors.New("create_booking: invalid booking duration")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_booking: slot is outside business hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrTooManyAttendees возвращается, когда число участников превышает вместимость зала
	ErrTooManyAttendees = errors.New("create_booking: attendees exceed venue capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
