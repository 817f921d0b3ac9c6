package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	venueRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/CHB-BookingService/internal/scheduling"
)

// UseCase use case для получения слотов площадки на дату
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

// Execute выполняет use case получения слотов
// Возвращает ВСЕ слоты сетки с признаком доступности: фронту нужны и
// занятые, чтобы отрисовать их серыми
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: venue=%d, date=%s",
		req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и нормализуем дату
	now := uc.timeProvider.Now()
	date := scheduling.NormalizeDate(req.Date)

	// 3. Валидация даты (не в прошлом)
	if err := validateDate(date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailableSlots: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 5. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetEffectiveConfig(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 6. Получаем активные бронирования на эту дату
	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	occupied := make([]scheduling.TimeSlot, 0, len(bookings))
	for _, b := range bookings {
		if !b.OccupiesSlot() {
			continue
		}
		occupied = append(occupied, b.Slot())
	}

	// 7. Строим сетку и размечаем доступность каждого атомарного слота
	grid := config.Grid()
	gridSlots := scheduling.GenerateDaySlots(grid)

	slots := make([]Slot, 0, len(gridSlots))
	for _, gs := range gridSlots {
		slots = append(slots, Slot{
			StartTime: gs.StartTime(),
			EndTime:   gs.EndTime(),
			Available: scheduling.IsSlotAvailable(gs, occupied),
		})
	}

	uc.logger.Info("GetAvailableSlots: venue=%d, date=%s, slots=%d, occupied=%d",
		req.VenueID, date.Format(domain.DateFormat), len(slots), len(occupied))

	return &Response{
		VenueID: req.VenueID,
		Date:    date,
		Slots:   slots,
	}, nil
}
