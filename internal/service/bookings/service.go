package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	"github.com/m04kA/CHB-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/CHB-BookingService/internal/integrations/directory"
	"github.com/m04kA/CHB-BookingService/internal/integrations/notify"
	"github.com/m04kA/CHB-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	directory   DirectoryClient
	notify      NotifyClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	directoryClient DirectoryClient,
	notifyClient NotifyClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		directory:   directoryClient,
		notify:      notifyClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу бронирования и администраторам.
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: booking=%d, user=%d", bookingID, userID)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking %d not found", bookingID)
			return nil, fmt.Errorf("%w: booking id %d", ErrBookingNotFound, bookingID)
		}
		s.logger.Error("GetByID: failed to get booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Проверка прав: владелец или администратор
	if err := s.checkUserAccess(ctx, b, userID); err != nil {
		return nil, err
	}

	return models.FromDomainBooking(b), nil
}

// GetUserBookings получает список бронирований пользователя.
// Пользователь видит свои бронирования, администратор - любые.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: requester=%d, user=%d", req.RequesterID, req.UserID)

	// Свои бронирования доступны без дополнительных проверок
	if req.RequesterID != req.UserID {
		if err := s.checkAdminAccess(ctx, req.RequesterID); err != nil {
			return nil, err
		}
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status %q", *req.Status)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		status = &st
	}

	bookingsList, err := s.bookingRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: failed to get bookings for user %d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: found %d bookings for user %d", len(bookingsList), req.UserID)
	return models.FromDomainBookingList(bookingsList), nil
}

// GetVenueBookings получает список бронирований площадки.
// Доступно только администраторам.
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: venue=%d, user=%d", req.VenueID, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	bookingsList, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: failed to get bookings for venue %d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: found %d bookings for venue %d", len(bookingsList), req.VenueID)
	return models.FromDomainBookingList(bookingsList), nil
}

// Cancel отменяет бронирование (soft delete).
// Доступно владельцу бронирования и администраторам.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking=%d, user=%d", bookingID, req.UserID)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking %d not found", bookingID)
			return nil, fmt.Errorf("%w: booking id %d", ErrBookingNotFound, bookingID)
		}
		s.logger.Error("Cancel: failed to get booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, b, req.UserID); err != nil {
		return nil, err
	}

	// Отменять можно только pending и confirmed бронирования
	if !b.CanBeCancelled() {
		s.logger.Warn("Cancel: booking %d in status %s cannot be cancelled", bookingID, b.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, b.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, domain.StatusCancelled, req.CancellationReason); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking id %d", ErrBookingNotFound, bookingID)
		}
		s.logger.Error("Cancel: failed to cancel booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.sendNotification(ctx, cancelled, notify.EventBookingCancelled, req.CancellationReason)

	s.logger.Info("Cancel: booking %d cancelled", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus изменяет статус бронирования.
// Доступно только администраторам. Допустимые переходы:
// pending -> confirmed | rejected, confirmed -> completed.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking=%d, user=%d, status=%s", bookingID, req.UserID, req.Status)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status %q", req.Status)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking %d not found", bookingID)
			return nil, fmt.Errorf("%w: booking id %d", ErrBookingNotFound, bookingID)
		}
		s.logger.Error("UpdateStatus: failed to get booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := validateTransition(b, newStatus); err != nil {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking %d", b.Status, newStatus, bookingID)
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking id %d", ErrBookingNotFound, bookingID)
		}
		s.logger.Error("UpdateStatus: failed to update booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Уведомляем пользователя о решении по заявке
	switch newStatus {
	case domain.StatusConfirmed:
		s.sendNotification(ctx, updated, notify.EventBookingConfirmed, "")
	case domain.StatusRejected:
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		s.sendNotification(ctx, updated, notify.EventBookingRejected, reason)
	}

	s.logger.Info("UpdateStatus: booking %d status updated to %s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// validateTransition проверяет допустимость перехода статуса
func validateTransition(b *domain.Booking, newStatus domain.BookingStatus) error {
	switch newStatus {
	case domain.StatusConfirmed, domain.StatusRejected:
		if !b.CanBeApproved() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, newStatus)
		}
	case domain.StatusCompleted:
		if !b.CanBeCompleted() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, newStatus)
		}
	default:
		// Отмена идёт через Cancel, возврат в pending не поддерживается
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, newStatus)
	}
	return nil
}

// checkUserAccess проверяет доступ к бронированию: владелец или администратор
func (s *Service) checkUserAccess(ctx context.Context, b *domain.Booking, userID int64) error {
	if b.UserID == userID {
		return nil
	}
	return s.checkAdminAccess(ctx, userID)
}

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

// sendNotification отправляет уведомление о событии бронирования (best-effort)
func (s *Service) sendNotification(ctx context.Context, b *domain.Booking, eventType string, reason string) {
	venueName := ""
	if venue, err := s.venueRepo.GetByID(ctx, b.VenueID); err == nil {
		venueName = venue.Name
	}

	event := notify.Event{
		Type:             eventType,
		RecipientEmail:   b.UserEmail,
		RecipientName:    b.UserName,
		BookingReference: b.Reference,
		VenueName:        venueName,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Reason:           reason,
	}

	s.notify.SendBestEffort(ctx, event)
}
