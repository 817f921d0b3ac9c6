package cancel_booking

// CancelBookingRequest HTTP request model.
// Тело запроса опционально - причина отмены может отсутствовать.
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}
