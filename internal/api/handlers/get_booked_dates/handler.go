package get_booked_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CHB-BookingService/internal/api/handlers"
	getBookedDates "github.com/m04kA/CHB-BookingService/internal/usecase/get_booked_dates"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingMonth   = "отсутствует параметр month"
	msgInvalidMonth   = "некорректный формат месяца, ожидается YYYY-MM"
	msgVenueNotFound  = "площадка не найдена"
)

// BookedDatesResponse HTTP response model
type BookedDatesResponse struct {
	VenueID     int64    `json:"venueId"`
	Month       string   `json:"month"`
	BookedDates []string `json:"bookedDates"`
}

type Handler struct {
	useCase GetBookedDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetBookedDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/booked-dates?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/booked-dates - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		h.logger.Warn("GET /venues/{id}/booked-dates - Missing month parameter: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBookedDates.Request{
		VenueID: venueID,
		Month:   month,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBookedDates.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/booked-dates - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getBookedDates.ErrInvalidMonth):
			h.logger.Warn("GET /venues/{id}/booked-dates - Invalid month %q: venue_id=%d", month, venueID)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getBookedDates.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/booked-dates - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		default:
			h.logger.Error("GET /venues/{id}/booked-dates - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/booked-dates - Retrieved %d booked dates: venue_id=%d, month=%s",
		len(result.BookedDates), venueID, month)
	handlers.RespondJSON(w, http.StatusOK, &BookedDatesResponse{
		VenueID:     result.VenueID,
		Month:       result.Month,
		BookedDates: result.BookedDates,
	})
}
