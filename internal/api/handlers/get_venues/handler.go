package get_venues

import (
	"errors"
	"net/http"

	"github.com/m04kA/CHB-BookingService/internal/api/handlers"
	"github.com/m04kA/CHB-BookingService/internal/service/venues"
)

const (
	msgInvalidKind = "неизвестный тип площадки"
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

// Handle GET /api/v1/venues?kind=lab
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var kind *string
	if kindStr := r.URL.Query().Get("kind"); kindStr != "" {
		kind = &kindStr
	}

	result, err := h.service.List(r.Context(), kind)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("GET /venues - Invalid kind filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidKind)

		default:
			h.logger.Error("GET /venues - Failed to list venues: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues - Retrieved %d venues", len(result.Venues))
	handlers.RespondJSON(w, http.StatusOK, result)
}
