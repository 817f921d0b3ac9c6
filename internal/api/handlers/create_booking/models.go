package create_booking

import (
	"time"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	createBooking "github.com/m04kA/CHB-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/CHB-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID     int64  `json:"venueId"`
	BookingDate string `json:"bookingDate"` // "2026-09-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "11:30"
	Purpose     string `json:"purpose"`
	Attendees   int    `json:"attendees"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	Reference   string  `json:"reference"`
	UserID      int64   `json:"userId"`
	VenueID     int64   `json:"venueId"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Purpose     string  `json:"purpose"`
	Attendees   int     `json:"attendees"`
	Status      string  `json:"status"`
	UserName    string  `json:"userName,omitempty"`
	UserEmail   string  `json:"userEmail,omitempty"`
	Department  *string `json:"department,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время начала и окончания
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		VenueID:   r.VenueID,
		Date:      bookingDate,
		StartTime: startTime,
		EndTime:   endTime,
		Purpose:   r.Purpose,
		Attendees: r.Attendees,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Reference:   resp.Reference,
		UserID:      resp.UserID,
		VenueID:     resp.VenueID,
		BookingDate: resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Purpose:     resp.Purpose,
		Attendees:   resp.Attendees,
		Status:      resp.Status,
		UserName:    resp.UserName,
		UserEmail:   resp.UserEmail,
		Department:  resp.Department,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
