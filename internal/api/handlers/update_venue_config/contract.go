package update_venue_config

import (
	"context"

	"github.com/m04kA/CHB-BookingService/internal/service/venues/models"
)

type VenueService interface {
	UpdateConfig(ctx context.Context, venueID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
	ResetConfig(ctx context.Context, venueID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
