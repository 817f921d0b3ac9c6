package get_venue_config

import (
	"context"

	"github.com/m04kA/CHB-BookingService/internal/service/venues/models"
)

type VenueService interface {
	GetConfig(ctx context.Context, venueID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
