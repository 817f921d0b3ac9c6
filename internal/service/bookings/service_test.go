package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	"github.com/m04kA/CHB-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/CHB-BookingService/internal/integrations/directory"
	"github.com/m04kA/CHB-BookingService/internal/integrations/notify"
	"github.com/m04kA/CHB-BookingService/internal/service/bookings/models"
	"github.com/m04kA/CHB-BookingService/pkg/types"
)

// Моки

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	args := m.Called(ctx, id, status, reason)
	return args.Error(0)
}

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

type MockDirectoryClient struct {
	mock.Mock
}

func (m *MockDirectoryClient) GetUser(ctx context.Context, userID int64) (*directory.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.User), args.Error(1)
}

type MockNotifyClient struct {
	mock.Mock
}

func (m *MockNotifyClient) SendBestEffort(ctx context.Context, event notify.Event) {
	m.Called(ctx, event)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Тестовое окружение

type testEnv struct {
	bookingRepo *MockBookingRepository
	venueRepo   *MockVenueRepository
	directory   *MockDirectoryClient
	notify      *MockNotifyClient
	svc         *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookingRepo: new(MockBookingRepository),
		venueRepo:   new(MockVenueRepository),
		directory:   new(MockDirectoryClient),
		notify:      new(MockNotifyClient),
	}
	env.svc = NewService(env.bookingRepo, env.venueRepo, env.directory, env.notify, noopLogger{})
	return env
}

const (
	ownerID    int64 = 42
	adminID    int64 = 1
	strangerID int64 = 99
)

func adminUser() *directory.User {
	return &directory.User{ID: adminID, Name: "Ops Admin", Email: "admin@example.com", Role: directory.RoleAdmin}
}

func regularUser(id int64) *directory.User {
	return &directory.User{ID: id, Name: "John Smith", Email: "john@example.com", Role: directory.RoleUser}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          10,
		Reference:   "3f2c1a9e-0000-4000-8000-000000000010",
		UserID:      ownerID,
		VenueID:     7,
		BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:30"),
		Purpose:     "Quarterly planning",
		Attendees:   12,
		Status:      status,
		IsActive:    status != domain.StatusCancelled && status != domain.StatusRejected,
		UserName:    "Jane Roe",
		UserEmail:   "jane@example.com",
	}
}

func testVenue() *domain.Venue {
	return &domain.Venue{ID: 7, Name: "Convention Center", Capacity: 200, IsActive: true}
}

// GetByID

func TestService_GetByID_Owner(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	b := testBooking(domain.StatusConfirmed)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(b, nil)

	resp, err := env.svc.GetByID(ctx, 10, ownerID)

	require.NoError(t, err)
	assert.Equal(t, b.Reference, resp.Reference)
	assert.Equal(t, "2026-09-10", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	env.directory.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestService_GetByID_AdminAccess(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusConfirmed), nil)
	env.directory.On("GetUser", ctx, adminID).Return(adminUser(), nil)

	resp, err := env.svc.GetByID(ctx, 10, adminID)

	require.NoError(t, err)
	assert.Equal(t, ownerID, resp.UserID)
}

func TestService_GetByID_AccessDenied(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusConfirmed), nil)
	env.directory.On("GetUser", ctx, strangerID).Return(regularUser(strangerID), nil)

	resp, err := env.svc.GetByID(ctx, 10, strangerID)

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, resp)
}

func TestService_GetByID_NotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, int64(404)).Return(nil, booking.ErrBookingNotFound)

	resp, err := env.svc.GetByID(ctx, 404, ownerID)

	require.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, resp)
}

// GetUserBookings

func TestService_GetUserBookings_Self(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	list := []*domain.Booking{testBooking(domain.StatusConfirmed), testBooking(domain.StatusPending)}
	env.bookingRepo.On("GetByUserID", ctx, ownerID, (*domain.BookingStatus)(nil)).Return(list, nil)

	resp, err := env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{RequesterID: ownerID, UserID: ownerID})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	env.directory.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestService_GetUserBookings_StatusFilter(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	confirmed := domain.StatusConfirmed
	env.bookingRepo.On("GetByUserID", ctx, ownerID, &confirmed).
		Return([]*domain.Booking{testBooking(domain.StatusConfirmed)}, nil)

	statusStr := "confirmed"
	resp, err := env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		RequesterID: ownerID,
		UserID:      ownerID,
		Status:      &statusStr,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestService_GetUserBookings_InvalidStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	statusStr := "archived"
	_, err := env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		RequesterID: ownerID,
		UserID:      ownerID,
		Status:      &statusStr,
	})

	require.ErrorIs(t, err, ErrInvalidStatus)
	env.bookingRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetUserBookings_OtherUserDenied(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.directory.On("GetUser", ctx, strangerID).Return(regularUser(strangerID), nil)

	_, err := env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{RequesterID: strangerID, UserID: ownerID})

	require.ErrorIs(t, err, ErrAccessDenied)
	env.bookingRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything, mock.Anything)
}

// GetVenueBookings

func TestService_GetVenueBookings_AdminOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.directory.On("GetUser", ctx, adminID).Return(adminUser(), nil)
	env.bookingRepo.On("GetByVenueWithFilter", ctx, mock.MatchedBy(func(f domain.VenueBookingsFilter) bool {
		return f.VenueID == 7 && !f.IncludeInactive
	})).Return([]*domain.Booking{testBooking(domain.StatusConfirmed)}, nil)

	resp, err := env.svc.GetVenueBookings(ctx, &models.GetVenueBookingsRequest{UserID: adminID, VenueID: 7})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestService_GetVenueBookings_DeniedForRegularUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.directory.On("GetUser", ctx, ownerID).Return(regularUser(ownerID), nil)

	_, err := env.svc.GetVenueBookings(ctx, &models.GetVenueBookingsRequest{UserID: ownerID, VenueID: 7})

	require.ErrorIs(t, err, ErrAccessDenied)
	env.bookingRepo.AssertNotCalled(t, "GetByVenueWithFilter", mock.Anything, mock.Anything)
}

// Cancel

func TestService_Cancel_ByOwner(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	active := testBooking(domain.StatusConfirmed)
	cancelled := testBooking(domain.StatusCancelled)
	reason := "plans changed"
	cancelled.CancellationReason = &reason

	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(active, nil).Once()
	env.bookingRepo.On("Cancel", ctx, int64(10), domain.StatusCancelled, reason).Return(nil)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(cancelled, nil).Once()
	env.venueRepo.On("GetByID", ctx, int64(7)).Return(testVenue(), nil)
	env.notify.On("SendBestEffort", ctx, mock.MatchedBy(func(e notify.Event) bool {
		return e.Type == notify.EventBookingCancelled &&
			e.Reason == reason &&
			e.VenueName == "Convention Center"
	})).Return()

	resp, err := env.svc.Cancel(ctx, 10, &models.CancelBookingRequest{UserID: ownerID, CancellationReason: reason})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, reason, *resp.CancellationReason)
	env.notify.AssertExpectations(t)
}

func TestService_Cancel_CompletedRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusCompleted), nil)

	_, err := env.svc.Cancel(ctx, 10, &models.CancelBookingRequest{UserID: ownerID})

	require.ErrorIs(t, err, ErrCannotCancel)
	env.bookingRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusCancelled), nil)

	_, err := env.svc.Cancel(ctx, 10, &models.CancelBookingRequest{UserID: ownerID})

	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestService_Cancel_StrangerDenied(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusConfirmed), nil)
	env.directory.On("GetUser", ctx, strangerID).Return(regularUser(strangerID), nil)

	_, err := env.svc.Cancel(ctx, 10, &models.CancelBookingRequest{UserID: strangerID})

	require.ErrorIs(t, err, ErrAccessDenied)
	env.bookingRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// UpdateStatus

func TestService_UpdateStatus_ConfirmPending(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.directory.On("GetUser", ctx, adminID).Return(adminUser(), nil)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusPending), nil).Once()
	env.bookingRepo.On("UpdateStatus", ctx, int64(10), domain.StatusConfirmed).Return(nil)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusConfirmed), nil).Once()
	env.venueRepo.On("GetByID", ctx, int64(7)).Return(testVenue(), nil)
	env.notify.On("SendBestEffort", ctx, mock.MatchedBy(func(e notify.Event) bool {
		return e.Type == notify.EventBookingConfirmed
	})).Return()

	resp, err := env.svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{UserID: adminID, Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	env.notify.AssertExpectations(t)
}

func TestService_UpdateStatus_RejectWithReason(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	reason := "venue under maintenance"
	env.directory.On("GetUser", ctx, adminID).Return(adminUser(), nil)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusPending), nil).Once()
	env.bookingRepo.On("UpdateStatus", ctx, int64(10), domain.StatusRejected).Return(nil)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusRejected), nil).Once()
	env.venueRepo.On("GetByID", ctx, int64(7)).Return(testVenue(), nil)
	env.notify.On("SendBestEffort", ctx, mock.MatchedBy(func(e notify.Event) bool {
		return e.Type == notify.EventBookingRejected && e.Reason == reason
	})).Return()

	resp, err := env.svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{UserID: adminID, Status: "rejected", Reason: &reason})

	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	env.notify.AssertExpectations(t)
}

func TestService_UpdateStatus_CompleteConfirmed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.directory.On("GetUser", ctx, adminID).Return(adminUser(), nil)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusConfirmed), nil).Once()
	env.bookingRepo.On("UpdateStatus", ctx, int64(10), domain.StatusCompleted).Return(nil)
	env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(domain.StatusCompleted), nil).Once()

	resp, err := env.svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{UserID: adminID, Status: "completed"})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	// Завершение брони не требует уведомления
	env.notify.AssertNotCalled(t, "SendBestEffort", mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{"confirm already confirmed", domain.StatusConfirmed, "confirmed"},
		{"complete pending", domain.StatusPending, "completed"},
		{"reject cancelled", domain.StatusCancelled, "rejected"},
		{"cancel via status update", domain.StatusConfirmed, "cancelled"},
		{"back to pending", domain.StatusConfirmed, "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			ctx := context.Background()

			env.directory.On("GetUser", ctx, adminID).Return(adminUser(), nil)
			env.bookingRepo.On("GetByID", ctx, int64(10)).Return(testBooking(tt.from), nil)

			_, err := env.svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{UserID: adminID, Status: tt.to})

			require.ErrorIs(t, err, ErrInvalidTransition)
			env.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_UpdateStatus_NonAdminDenied(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.directory.On("GetUser", ctx, ownerID).Return(regularUser(ownerID), nil)

	_, err := env.svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{UserID: ownerID, Status: "confirmed"})

	require.ErrorIs(t, err, ErrAccessDenied)
	env.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.directory.On("GetUser", ctx, adminID).Return(adminUser(), nil)

	_, err := env.svc.UpdateStatus(ctx, 10, &models.UpdateStatusRequest{UserID: adminID, Status: "archived"})

	require.ErrorIs(t, err, ErrInvalidStatus)
}
