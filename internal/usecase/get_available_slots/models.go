package get_available_slots

import (
	"time"

	"github.com/m04kA/CHB-BookingService/pkg/types"
)

// Request модель запроса на получение слотов площадки
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов сетки
type Response struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата, на которую запрашивались слоты
	Slots   []Slot    // Все слоты сетки с признаком доступности
}

// Slot модель атомарного слота сетки
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "09:30")
	EndTime   types.TimeString // Время окончания слота
	Available bool             // Свободен ли слот
}
