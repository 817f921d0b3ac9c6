package get_booked_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CHB-BookingService/internal/domain"
	"github.com/m04kA/CHB-BookingService/pkg/types"
)

type MockBookingRepository struct {
	mock.Mock
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

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(bookingRepo *MockBookingRepository, venueRepo *MockVenueRepository, configRepo *MockConfigRepository) *UseCase {
	uc := NewUseCase(bookingRepo, venueRepo, configRepo, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func booking(d int, start, end string) *domain.Booking {
	return &domain.Booking{
		VenueID:     5,
		BookingDate: day(d),
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      domain.StatusConfirmed,
		IsActive:    true,
	}
}

func TestExecute_FullyBookedDates(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	venueRepo := new(MockVenueRepository)
	configRepo := new(MockConfigRepository)
	uc := newTestUseCase(bookingRepo, venueRepo, configRepo)

	venueRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Venue{ID: 5, IsActive: true}, nil)
	configRepo.On("GetEffectiveConfig", mock.Anything, int64(5)).Return(domain.DefaultVenueSlotsConfig(), nil)
	bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.MatchedBy(func(f domain.VenueBookingsFilter) bool {
		return f.StartDate.Equal(day(1)) && f.EndDate.Equal(day(30)) && !f.IncludeInactive
	})).Return([]*domain.Booking{
		// 10 сентября занято полностью одним бронированием
		booking(10, "09:00", "16:30"),
		// 15 сентября почти занято, но атомарный слот 12:00-12:30 свободен
		booking(15, "09:00", "12:00"),
		booking(15, "12:30", "16:30"),
		// 20 сентября занято двумя стыкующимися бронированиями
		booking(20, "09:00", "13:00"),
		booking(20, "13:00", "17:00"),
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 5, Month: "2026-09"})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-10", "2026-09-20"}, resp.BookedDates)
}

func TestExecute_PastDatesExcluded(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	venueRepo := new(MockVenueRepository)
	configRepo := new(MockConfigRepository)
	uc := newTestUseCase(bookingRepo, venueRepo, configRepo)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)}

	venueRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Venue{ID: 5, IsActive: true}, nil)
	configRepo.On("GetEffectiveConfig", mock.Anything, int64(5)).Return(domain.DefaultVenueSlotsConfig(), nil)
	bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		booking(10, "09:00", "17:00"),
		booking(20, "09:00", "17:00"),
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 5, Month: "2026-09"})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-20"}, resp.BookedDates)
}

func TestExecute_InvalidMonth(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	venueRepo := new(MockVenueRepository)
	configRepo := new(MockConfigRepository)
	uc := newTestUseCase(bookingRepo, venueRepo, configRepo)

	for _, month := range []string{"", "2026/09", "September", "2026-13"} {
		_, err := uc.Execute(context.Background(), &Request{VenueID: 5, Month: month})
		require.ErrorIs(t, err, ErrInvalidMonth, "month %q", month)
	}
}

func TestExecute_EmptyMonth(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	venueRepo := new(MockVenueRepository)
	configRepo := new(MockConfigRepository)
	uc := newTestUseCase(bookingRepo, venueRepo, configRepo)

	venueRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Venue{ID: 5, IsActive: true}, nil)
	configRepo.On("GetEffectiveConfig", mock.Anything, int64(5)).Return(domain.DefaultVenueSlotsConfig(), nil)
	bookingRepo.On("GetByVenueWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 5, Month: "2026-09"})

	require.NoError(t, err)
	assert.Empty(t, resp.BookedDates)
}
