package get_available_slots

import (
	"github.com/m04kA/CHB-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/CHB-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель атомарного слота сетки
type SlotResponse struct {
	StartTime string `json:"startTime"` // "09:30"
	EndTime   string `json:"endTime"`   // "10:00"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	VenueID int64          `json:"venueId"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		VenueID: resp.VenueID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
