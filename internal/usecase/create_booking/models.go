package create_booking

import (
	"time"

	"github.com/m04kA/CHB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя из справочника кампуса
	VenueID   int64            // ID площадки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
	EndTime   types.TimeString // Время окончания (например, "11:30")
	Purpose   string           // Цель бронирования
	Attendees int              // Ожидаемое число участников
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // Внутренний ID бронирования
	Reference string           // Пользовательский reference (uuid)
	UserID    int64            // ID пользователя
	VenueID   int64            // ID площадки
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время окончания
	Purpose   string           // Цель бронирования
	Attendees int              // Число участников
	Status    string           // Статус: pending или confirmed

	// Денормализованные данные пользователя
	UserName   string
	UserEmail  string
	Department *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
