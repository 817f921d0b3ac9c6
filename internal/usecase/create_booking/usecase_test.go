package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	venueRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/CHB-BookingService/internal/integrations/directory"
	"github.com/m04kA/CHB-BookingService/internal/integrations/notify"
	"github.com/m04kA/CHB-BookingService/pkg/ptr"
	"github.com/m04kA/CHB-BookingService/pkg/types"
)

// Mock repositories and clients

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	created := args.Get(0).(*domain.Booking)
	return created, args.Error(1)
}

func (m *MockBookingRepository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
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

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) GetEffectiveConfig(ctx context.Context, venueID int64) (*domain.VenueSlotsConfig, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VenueSlotsConfig), args.Error(1)
}

type MockDirectoryClient struct {
	mock.Mock
}

func (m *MockDirectoryClient) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*directory.User, error) {
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

// MockTxManager выполняет функцию сразу, без реальной транзакции
type MockTxManager struct{}

func (m *MockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

// Test fixtures

type testEnv struct {
	uc          *UseCase
	bookingRepo *MockBookingRepository
	venueRepo   *MockVenueRepository
	configRepo  *MockConfigRepository
	dirClient   *MockDirectoryClient
	notify      *MockNotifyClient
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		bookingRepo: new(MockBookingRepository),
		venueRepo:   new(MockVenueRepository),
		configRepo:  new(MockConfigRepository),
		dirClient:   new(MockDirectoryClient),
		notify:      new(MockNotifyClient),
	}
	env.uc = NewUseCase(
		env.bookingRepo,
		env.venueRepo,
		env.configRepo,
		env.dirClient,
		env.notify,
		&MockTxManager{},
		&noopLogger{},
	)
	env.uc.timeProvider = &fixedTimeProvider{now: now}
	return env
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func testVenue() *domain.Venue {
	return &domain.Venue{
		ID:       7,
		Name:     "Convention Center",
		Kind:     domain.KindConventionCenter,
		Location: "Main Campus",
		Capacity: 200,
		IsActive: true,
	}
}

func testConfig(requiresApproval bool) *domain.VenueSlotsConfig {
	cfg := domain.DefaultVenueSlotsConfig()
	cfg.VenueID = ptr.Ptr(int64(7))
	cfg.RequiresApproval = requiresApproval
	return cfg
}

func testUser() *directory.User {
	dept := "Finance"
	return &directory.User{
		ID:         42,
		Name:       "Jane Roe",
		Email:      "jane.roe@example.edu",
		Department: &dept,
		Role:       directory.RoleStaff,
	}
}

func testRequest(date time.Time) *Request {
	return &Request{
		UserID:    42,
		VenueID:   7,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "11:30",
		Purpose:   "Quarterly budget review",
		Attendees: 12,
	}
}

func futureDate() time.Time {
	return time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
}

func testNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func existingBooking(start, end string) *domain.Booking {
	return &domain.Booking{
		ID:          1,
		UserID:      99,
		VenueID:     7,
		BookingDate: futureDate(),
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      domain.StatusConfirmed,
		IsActive:    true,
	}
}

// Tests

func TestExecute_AutoConfirmed(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(false), nil)
	env.bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	env.bookingRepo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID:          10,
		Reference:   "ref-1",
		UserID:      42,
		VenueID:     7,
		BookingDate: futureDate(),
		StartTime:   "10:00",
		EndTime:     "11:30",
		Purpose:     req.Purpose,
		Attendees:   req.Attendees,
		Status:      domain.StatusConfirmed,
		IsActive:    true,
		UserName:    "Jane Roe",
		UserEmail:   "jane.roe@example.edu",
	}, nil)
	env.notify.On("SendBestEffort", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
		return e.Type == notify.EventBookingConfirmed
	})).Return()

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "ref-1", resp.Reference)
	env.notify.AssertExpectations(t)
}

func TestExecute_PendingWhenApprovalRequired(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)
	env.bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	env.bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusPending && b.IsActive && b.Reference != ""
	})).Return(&domain.Booking{
		ID:        11,
		Reference: "ref-2",
		Status:    domain.StatusPending,
		IsActive:  true,
		StartTime: "10:00",
		EndTime:   "11:30",
	}, nil)
	env.notify.On("SendBestEffort", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
		return e.Type == notify.EventBookingCreated
	})).Return()

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	env.bookingRepo.AssertExpectations(t)
}

func TestExecute_SlotConflict(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)
	env.bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		existingBooking("11:00", "12:00"),
	}, nil)

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrSlotConflict)
	env.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())
	req.StartTime = "12:00"
	req.EndTime = "13:00"

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)
	// Существующее бронирование заканчивается ровно в 12:00 - граница не конфликт
	env.bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		existingBooking("10:00", "12:00"),
	}, nil)
	env.bookingRepo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID:        12,
		Reference: "ref-3",
		Status:    domain.StatusPending,
		IsActive:  true,
		StartTime: "12:00",
		EndTime:   "13:00",
	}, nil)
	env.notify.On("SendBestEffort", mock.Anything, mock.Anything).Return()

	_, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())

	cancelled := existingBooking("10:00", "12:00")
	cancelled.Status = domain.StatusCancelled
	cancelled.IsActive = false

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)
	env.bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{cancelled}, nil)
	env.bookingRepo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID:        13,
		Reference: "ref-4",
		Status:    domain.StatusPending,
		IsActive:  true,
		StartTime: "10:00",
		EndTime:   "11:30",
	}, nil)
	env.notify.On("SendBestEffort", mock.Anything, mock.Anything).Return()

	_, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestExecute_PastDateRejected(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DurationOutOfLimits(t *testing.T) {
	env := newTestEnv(testNow())

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)

	// Короче минимума (30 минут)
	req := testRequest(futureDate())
	req.StartTime = "10:00"
	req.EndTime = "10:15"
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDuration)

	// Длиннее максимума (480 минут)
	req = testRequest(futureDate())
	req.StartTime = "08:00"
	req.EndTime = "17:00"
	_, err = env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())
	req.StartTime = "08:00"
	req.EndTime = "09:30"

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).Return(testUser(), nil)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_VenueNotFound(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, venueRepo.ErrVenueNotFound)

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_InactiveVenue(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())

	venue := testVenue()
	venue.IsActive = false
	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(venue, nil)

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrVenueInactive)
}

func TestExecute_AttendeesExceedCapacity(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())
	req.Attendees = 500

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)

	_, err := env.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrTooManyAttendees)
}

func TestExecute_DirectoryDegradedStillBooks(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest(futureDate())

	env.venueRepo.On("GetByID", mock.Anything, int64(7)).Return(testVenue(), nil)
	env.dirClient.On("GetUserWithGracefulDegradation", mock.Anything, int64(42)).
		Return(nil, directory.ErrServiceDegraded)
	env.configRepo.On("GetEffectiveConfig", mock.Anything, int64(7)).Return(testConfig(true), nil)
	env.bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	env.bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserName == "" && b.UserEmail == ""
	})).Return(&domain.Booking{
		ID:        14,
		Reference: "ref-5",
		Status:    domain.StatusPending,
		IsActive:  true,
		StartTime: "10:00",
		EndTime:   "11:30",
	}, nil)
	env.notify.On("SendBestEffort", mock.Anything, mock.Anything).Return()

	_, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	env.bookingRepo.AssertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(testNow())

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero user", mutate: func(req *Request) { req.UserID = 0 }},
		{name: "zero venue", mutate: func(req *Request) { req.VenueID = 0 }},
		{name: "zero date", mutate: func(req *Request) { req.Date = time.Time{} }},
		{name: "missing start time", mutate: func(req *Request) { req.StartTime = "" }},
		{name: "missing end time", mutate: func(req *Request) { req.EndTime = "" }},
		{name: "bad start time", mutate: func(req *Request) { req.StartTime = "25:00" }},
		{name: "empty purpose", mutate: func(req *Request) { req.Purpose = "" }},
		{name: "zero attendees", mutate: func(req *Request) { req.Attendees = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(futureDate())
			tt.mutate(req)
			_, err := env.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
