package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	configRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/config"
	venueRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/CHB-BookingService/internal/integrations/directory"
	"github.com/m04kA/CHB-BookingService/internal/service/venues/models"
)

// Service сервис для работы с каталогом площадок и их конфигурацией
type Service struct {
	venueRepo  VenueRepository
	configRepo ConfigRepository
	directory  DirectoryClient
	logger     Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	venueRepo VenueRepository,
	configRepo ConfigRepository,
	directoryClient DirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		venueRepo:  venueRepo,
		configRepo: configRepo,
		directory:  directoryClient,
		logger:     logger,
	}
}

// List возвращает список активных площадок.
// Публичный метод - доступен всем. Опциональный фильтр по типу площадки.
func (s *Service) List(ctx context.Context, kind *string) (*models.VenueListResponse, error) {
	s.logger.Info("List: fetching active venues, kind=%v", kind)

	var kindFilter *domain.VenueKind
	if kind != nil {
		k := domain.VenueKind(*kind)
		if !domain.ValidVenueKind(k) {
			s.logger.Warn("List: invalid venue kind %q", *kind)
			return nil, fmt.Errorf("%w: unknown venue kind %q", ErrInvalidInput, *kind)
		}
		kindFilter = &k
	}

	venuesList, err := s.venueRepo.ListActive(ctx, kindFilter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d venues", len(venuesList))
	return models.FromDomainVenueList(venuesList), nil
}

// GetByID возвращает площадку по ID.
// Публичный метод - доступен всем.
func (s *Service) GetByID(ctx context.Context, venueID int64) (*models.VenueResponse, error) {
	s.logger.Info("GetByID: fetching venue id=%d", venueID)

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%d not found", venueID)
			return nil, fmt.Errorf("%w: venue id %d", ErrVenueNotFound, venueID)
		}
		s.logger.Error("GetByID: repository error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomainVenue(venue), nil
}

// GetConfig возвращает действующую конфигурацию слотов площадки.
// Публичный метод - используется фронтендом для отрисовки сетки слотов.
// Учитывает иерархию: конфигурация площадки -> общая конфигурация кампуса ->
// встроенные значения по умолчанию.
func (s *Service) GetConfig(ctx context.Context, venueID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for venue id=%d", venueID)

	// Проверяем существование площадки
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetConfig: venue id=%d not found", venueID)
			return nil, fmt.Errorf("%w: venue id %d", ErrVenueNotFound, venueID)
		}
		s.logger.Error("GetConfig: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	config, err := s.configRepo.GetEffectiveConfig(ctx, venueID)
	if err != nil {
		s.logger.Error("GetConfig: repository error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("GetConfig: successfully fetched config for venue id=%d", venueID)
	return models.FromDomainConfig(config), nil
}

// UpdateConfig обновляет конфигурацию слотов площадки.
// Доступно только администраторам. Частичное обновление поверх действующей
// конфигурации, результат сохраняется как venue-specific строка.
func (s *Service) UpdateConfig(ctx context.Context, venueID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating config for venue id=%d by user=%d", venueID, req.UserID)

	// 1. Проверяем права доступа (только администратор)
	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	// 2. Проверяем существование площадки
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("UpdateConfig: venue id=%d not found", venueID)
			return nil, fmt.Errorf("%w: venue id %d", ErrVenueNotFound, venueID)
		}
		s.logger.Error("UpdateConfig: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Берём действующую конфигурацию как основу для частичного обновления
	config, err := s.configRepo.GetEffectiveConfig(ctx, venueID)
	if err != nil {
		s.logger.Error("UpdateConfig: failed to get effective config for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Применяем обновления и валидируем результат
	updated := *config
	updated.VenueID = &venueID
	req.ApplyToConfig(&updated)

	if err := validateConfig(&updated); err != nil {
		s.logger.Warn("UpdateConfig: validation failed for venue id=%d: %v", venueID, err)
		return nil, err
	}

	// 5. Сохраняем venue-specific конфигурацию
	saved, err := s.configRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("UpdateConfig: repository error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated config id=%d for venue id=%d", saved.ID, venueID)
	return models.FromDomainConfig(saved), nil
}

// ResetConfig удаляет venue-specific конфигурацию, площадка возвращается
// к общей конфигурации кампуса. Доступно только администраторам.
func (s *Service) ResetConfig(ctx context.Context, venueID int64, userID int64) error {
	s.logger.Info("ResetConfig: resetting config for venue id=%d by user=%d", venueID, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.configRepo.Delete(ctx, venueID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("ResetConfig: no venue-specific config for venue id=%d", venueID)
			return fmt.Errorf("%w: venue id %d", ErrConfigNotFound, venueID)
		}
		s.logger.Error("ResetConfig: repository error for venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("ResetConfig: successfully reset config for venue id=%d", venueID)
	return nil
}

// Вспомогательные методы

// checkAdminAccess проверяет, что пользователь является администратором
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			s.logger.Warn("checkAdminAccess: user %d not found in directory", userID)
			return fmt.Errorf("%w: user id %d", ErrAccessDenied, userID)
		}
		s.logger.Error("checkAdminAccess: directory request failed for user %d: %v", userID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !user.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user %d with role %s denied", userID, user.Role)
		return fmt.Errorf("%w: user id %d", ErrAccessDenied, userID)
	}

	return nil
}

// validateConfig валидирует параметры конфигурации слотов
func validateConfig(c *domain.VenueSlotsConfig) error {
	if c.GridStartHour < 0 || c.GridStartHour > 23 {
		return fmt.Errorf("%w: gridStartHour must be between 0 and 23", ErrInvalidInput)
	}
	if c.GridEndHour < 0 || c.GridEndHour > 23 {
		return fmt.Errorf("%w: gridEndHour must be between 0 and 23", ErrInvalidInput)
	}
	if c.GridEndMinute < 0 || c.GridEndMinute > 59 {
		return fmt.Errorf("%w: gridEndMinute must be between 0 and 59", ErrInvalidInput)
	}
	if c.GridIntervalMinutes < domain.MinGridIntervalMinutes || c.GridIntervalMinutes > domain.MaxGridIntervalMinutes {
		return fmt.Errorf("%w: gridIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinGridIntervalMinutes, domain.MaxGridIntervalMinutes)
	}

	gridStart := c.GridStartHour * 60
	gridEnd := c.GridEndHour*60 + c.GridEndMinute
	if gridEnd <= gridStart {
		return fmt.Errorf("%w: grid end must be after grid start", ErrInvalidInput)
	}

	if c.MinBookingMinutes <= 0 {
		return fmt.Errorf("%w: minBookingMinutes must be positive", ErrInvalidInput)
	}
	if c.MaxBookingMinutes < c.MinBookingMinutes {
		return fmt.Errorf("%w: maxBookingMinutes must be >= minBookingMinutes", ErrInvalidInput)
	}
	if c.MinBookingMinutes < c.GridIntervalMinutes {
		return fmt.Errorf("%w: minBookingMinutes must be >= gridIntervalMinutes", ErrInvalidInput)
	}
	if c.MinBookingMinutes%c.GridIntervalMinutes != 0 || c.MaxBookingMinutes%c.GridIntervalMinutes != 0 {
		return fmt.Errorf("%w: booking duration limits must be multiples of gridIntervalMinutes", ErrInvalidInput)
	}

	return nil
}
