package update_venue_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CHB-BookingService/internal/api/handlers"
	"github.com/m04kA/CHB-BookingService/internal/api/middleware"
	"github.com/m04kA/CHB-BookingService/internal/service/venues"
	"github.com/m04kA/CHB-BookingService/internal/service/venues/models"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidRequest = "некорректное тело запроса"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgVenueNotFound  = "площадка не найдена"
	msgConfigNotFound = "конфигурация площадки не найдена"
	msgForbidden      = "доступ запрещен"
	msgInvalidConfig  = "некорректные параметры конфигурации"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/venues/{venueId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, userID, ok := h.parseRequest(w, r, "PUT")
	if !ok {
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.service.UpdateConfig(r.Context(), venueID, &models.UpdateConfigRequest{
		UserID:              userID,
		GridStartHour:       req.GridStartHour,
		GridEndHour:         req.GridEndHour,
		GridEndMinute:       req.GridEndMinute,
		GridIntervalMinutes: req.GridIntervalMinutes,
		MinBookingMinutes:   req.MinBookingMinutes,
		MaxBookingMinutes:   req.MaxBookingMinutes,
		RequiresApproval:    req.RequiresApproval,
	})
	if err != nil {
		h.respondError(w, "PUT", venueID, userID, err)
		return
	}

	h.logger.Info("PUT /venues/{id}/config - Config updated: venue_id=%d, user_id=%d", venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleReset DELETE /api/v1/venues/{venueId}/config
// Сбрасывает venue-specific конфигурацию к общей конфигурации кампуса.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	venueID, userID, ok := h.parseRequest(w, r, "DELETE")
	if !ok {
		return
	}

	if err := h.service.ResetConfig(r.Context(), venueID, userID); err != nil {
		h.respondError(w, "DELETE", venueID, userID, err)
		return
	}

	h.logger.Info("DELETE /venues/{id}/config - Config reset: venue_id=%d, user_id=%d", venueID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request, method string) (venueID, userID int64, ok bool) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("%s /venues/{id}/config - Invalid venue ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return 0, 0, false
	}

	userID, authOK := middleware.GetUserID(r.Context())
	if !authOK {
		h.logger.Warn("%s /venues/{id}/config - Missing user ID", method)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return venueID, userID, true
}

func (h *Handler) respondError(w http.ResponseWriter, method string, venueID, userID int64, err error) {
	switch {
	case errors.Is(err, venues.ErrVenueNotFound):
		h.logger.Warn("%s /venues/{id}/config - Venue not found: venue_id=%d", method, venueID)
		handlers.RespondNotFound(w, msgVenueNotFound)

	case errors.Is(err, venues.ErrConfigNotFound):
		h.logger.Warn("%s /venues/{id}/config - Config not found: venue_id=%d", method, venueID)
		handlers.RespondNotFound(w, msgConfigNotFound)

	case errors.Is(err, venues.ErrAccessDenied):
		h.logger.Warn("%s /venues/{id}/config - Access denied: venue_id=%d, user_id=%d", method, venueID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, venues.ErrInvalidInput):
		h.logger.Warn("%s /venues/{id}/config - Invalid config: venue_id=%d, error=%v", method, venueID, err)
		handlers.RespondBadRequest(w, msgInvalidConfig)

	default:
		h.logger.Error("%s /venues/{id}/config - Failed: venue_id=%d, error=%v", method, venueID, err)
		handlers.RespondInternalError(w)
	}
}
