package venues

import (
	"context"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	"github.com/m04kA/CHB-BookingService/internal/integrations/directory"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	ListActive(ctx context.Context, kind *domain.VenueKind) ([]*domain.Venue, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetEffectiveConfig(ctx context.Context, venueID int64) (*domain.VenueSlotsConfig, error)
	Upsert(ctx context.Context, config *domain.VenueSlotsConfig) (*domain.VenueSlotsConfig, error)
	Delete(ctx context.Context, venueID int64) error
}

// DirectoryClient интерфейс клиента справочника пользователей
type DirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*directory.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
