package get_booked_dates

// Request модель запроса на получение занятых дат месяца
type Request struct {
	VenueID int64  // ID площадки
	Month   string // Месяц в формате YYYY-MM
}

// Response модель ответа: полностью занятые даты месяца
type Response struct {
	VenueID     int64    // ID площадки
	Month       string   // Запрошенный месяц
	BookedDates []string // Отсортированные даты YYYY-MM-DD без единого свободного слота
}
