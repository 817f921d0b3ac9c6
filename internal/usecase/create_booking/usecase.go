package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	venueRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/CHB-BookingService/internal/integrations/directory"
	"github.com/m04kA/CHB-BookingService/internal/integrations/notify"
	"github.com/m04kA/CHB-BookingService/internal/scheduling"
)

// UseCase use case для создания бронирования зала
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	configRepo   ConfigRepository
	dirClient    DirectoryClient
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	configRepo ConfigRepository,
	dirClient DirectoryClient,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		configRepo:   configRepo,
		dirClient:    dirClient,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции с блокировкой бронирований дня (FOR UPDATE), что закрывает
// гонку между конкурирующими запросами на один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, date=%s, slot=%s-%s",
		req.UserID, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и нормализуем дату к UTC полуночи
	now := uc.timeProvider.Now()
	bookingDate := scheduling.NormalizeDate(req.Date)

	// 3. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsActive {
		uc.logger.Warn("CreateBooking: venue id=%d is not active", req.VenueID)
		return nil, ErrVenueInactive
	}

	if venue.Capacity > 0 && req.Attendees > venue.Capacity {
		uc.logger.Warn("CreateBooking: attendees=%d exceed capacity=%d of venue id=%d",
			req.Attendees, venue.Capacity, req.VenueID)
		return nil, fmt.Errorf("%w: venue capacity is %d", ErrTooManyAttendees, venue.Capacity)
	}

	// 4. Получаем профиль пользователя из справочника
	// При недоступности справочника бронирование продолжается без
	// денормализованных данных
	var userName, userEmail string
	var department *string

	user, err := uc.dirClient.GetUserWithGracefulDegradation(ctx, req.UserID)
	switch {
	case err == nil:
		userName = user.Name
		userEmail = user.Email
		department = user.Department
	case errors.Is(err, directory.ErrUserNotFound):
		uc.logger.Warn("CreateBooking: user id=%d not found in directory", req.UserID)
		return nil, ErrUserNotFound
	case errors.Is(err, directory.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: directory degraded, proceeding without user profile for user id=%d", req.UserID)
	default:
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию слотов с учетом иерархии
		config, err := uc.configRepo.GetEffectiveConfig(txCtx, req.VenueID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// 5.2. Валидация даты (не в прошлом)
		if err := validateDate(bookingDate, now); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Строим запрошенный интервал с учетом лимитов длительности
		slot, err := buildRequestedSlot(req, config)
		if err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 5.4. Проверяем попадание в рабочие часы
		if err := validateWithinBusinessHours(slot, config.Grid()); err != nil {
			uc.logger.Warn("CreateBooking: business hours validation failed: %v", err)
			return err
		}

		// 5.5. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.VenueBookingsFilter{
			VenueID:         req.VenueID,
			StartDate:       &bookingDate,
			EndDate:         &bookingDate,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.6. Проверяем доступность слота (строгие неравенства,
		// граничные случаи back-to-back не считаются пересечением)
		if !scheduling.IsSlotAvailable(slot, occupiedSlots(bookings)) {
			uc.logger.Warn("CreateBooking: slot %s conflicts with an existing booking on venue id=%d",
				slot, req.VenueID)
			return ErrSlotConflict
		}

		// 5.7. Начальный статус зависит от политики площадки
		status := domain.StatusConfirmed
		if config.RequiresApproval {
			status = domain.StatusPending
		}

		booking := &domain.Booking{
			Reference:   uuid.NewString(),
			UserID:      req.UserID,
			VenueID:     req.VenueID,
			BookingDate: bookingDate,
			StartTime:   slot.StartTime(),
			EndTime:     slot.EndTime(),
			Purpose:     req.Purpose,
			Attendees:   req.Attendees,
			Status:      status,
			IsActive:    true,
			// Денормализация данных пользователя
			UserName:   userName,
			UserEmail:  userEmail,
			Department: department,
		}

		// 5.8. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s, status=%s",
		result.ID, result.Reference, result.Status)

	// 6. Отправляем уведомление (best effort, вне транзакции)
	eventType := notify.EventBookingCreated
	if result.Status == domain.StatusConfirmed {
		eventType = notify.EventBookingConfirmed
	}
	uc.notifyClient.SendBestEffort(ctx, notify.Event{
		Type:             eventType,
		RecipientEmail:   result.UserEmail,
		RecipientName:    result.UserName,
		BookingReference: result.Reference,
		VenueName:        venue.Name,
		BookingDate:      result.BookingDate.Format(domain.DateFormat),
		StartTime:        result.StartTime.String(),
		EndTime:          result.EndTime.String(),
	})

	// Конвертируем в response
	return &Response{
		ID:         result.ID,
		Reference:  result.Reference,
		UserID:     result.UserID,
		VenueID:    result.VenueID,
		Date:       result.BookingDate,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Purpose:    result.Purpose,
		Attendees:  result.Attendees,
		Status:     string(result.Status),
		UserName:   result.UserName,
		UserEmail:  result.UserEmail,
		Department: result.Department,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
