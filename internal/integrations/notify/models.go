package notify

// Типы событий бронирования для почтового шлюза
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingRejected  = "booking_rejected"
	EventBookingCancelled = "booking_cancelled"
)

// Event событие бронирования, отправляемое в почтовый шлюз
type Event struct {
	Type           string `json:"type"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	BookingReference string `json:"booking_reference"`
	VenueName        string `json:"venue_name"`
	BookingDate      string `json:"booking_date"` // YYYY-MM-DD
	StartTime        string `json:"start_time"`   // HH:MM
	EndTime          string `json:"end_time"`     // HH:MM

	Reason string `json:"reason,omitempty"` // причина отмены или отклонения
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
