package get_booked_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	venueRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/CHB-BookingService/internal/scheduling"
)

// UseCase use case для получения полностью занятых дат месяца
// Календарь на фронте блокирует такие даты целиком
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	configRepo   ConfigRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		configRepo:   configRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения занятых дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookedDates: venue=%d, month=%s", req.VenueID, req.Month)

	// 1. Валидация входных данных
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	monthStart, err := time.ParseInLocation(domain.MonthFormat, req.Month, time.UTC)
	if err != nil {
		uc.logger.Warn("GetBookedDates: invalid month %q", req.Month)
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, req.Month)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	// 2. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetBookedDates: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetBookedDates: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetEffectiveConfig(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetBookedDates: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 4. Получаем активные бронирования месяца одним запросом
	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &monthStart,
		EndDate:         &monthEnd,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetBookedDates: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	dayBookings := make([]scheduling.DayBooking, 0, len(bookings))
	for _, b := range bookings {
		if !b.OccupiesSlot() {
			continue
		}
		dayBookings = append(dayBookings, scheduling.DayBooking{
			Date: b.BookingDate,
			Slot: b.Slot(),
		})
	}

	// 5. Агрегируем по сетке: прошедшие даты исключаются внутри
	booked := scheduling.ComputeFullyBookedDates(config.Grid(), dayBookings, uc.timeProvider.Now())

	uc.logger.Info("GetBookedDates: venue=%d, month=%s, fully booked dates=%d",
		req.VenueID, req.Month, len(booked))

	return &Response{
		VenueID:     req.VenueID,
		Month:       req.Month,
		BookedDates: booked,
	}, nil
}
