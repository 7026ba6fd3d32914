package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TableBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

// Фейки для тестов

type fakeBookingRepo struct {
	byRef      map[string]*domain.Booking
	lastFilter domain.BookingHistoryFilter
	listResult []*domain.Booking
	total      int
	updateErr  error
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{byRef: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		f.byRef[b.BookingReference] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	b, ok := f.byRef[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserWithFilter(_ context.Context, filter domain.BookingHistoryFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.listResult, nil
}

func (f *fakeBookingRepo) CountByUserWithFilter(_ context.Context, filter domain.BookingHistoryFilter) (int, error) {
	return f.total, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, b := range f.byRef {
		if b.ID != id {
			continue
		}
		for _, s := range from {
			if b.Status == s {
				b.Status = to
				return nil
			}
		}
		return bookingRepo.ErrStaleStatus
	}
	return bookingRepo.ErrStaleStatus
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:               1,
		BookingReference: "ABC1234",
		RestaurantID:     1,
		UserID:           100,
		VisitDate:        time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		VisitTime:        "19:30",
		PartySize:        4,
		Status:           domain.StatusConfirmed,
		CustomerName:     "John Smith",
		CustomerEmail:    "john@example.com",
		CustomerMobile:   "+447700900123",
	}
}

func TestGetByReference(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking())
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByReference(context.Background(), "ABC1234", 100)
	require.NoError(t, err)

	assert.Equal(t, "ABC1234", resp.BookingReference)
	assert.Equal(t, "2026-09-18", resp.VisitDate)
	assert.Equal(t, "19:30", resp.VisitTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.CancellationReason)
}

func TestGetByReference_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetByReference(context.Background(), "ZZZ9999", 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByReference_AccessDenied(t *testing.T) {
	svc := NewService(newFakeBookingRepo(confirmedBooking()), nopLogger{})

	_, err := svc.GetByReference(context.Background(), "ABC1234", 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByReference_ResolvesCancellationReason(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	booking.CancellationReasonID = ptr.Ptr(int64(1))
	cancelledAt := time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC)
	booking.CancelledAt = &cancelledAt

	svc := NewService(newFakeBookingRepo(booking), nopLogger{})

	resp, err := svc.GetByReference(context.Background(), "ABC1234", 100)
	require.NoError(t, err)

	require.NotNil(t, resp.CancellationReason)
	reason, ok := domain.CancellationReasonByID(1)
	require.True(t, ok)
	assert.Equal(t, reason.Reason, *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, cancelledAt.Format(time.RFC3339), *resp.CancelledAt)
}

func TestGetUserBookings_PaginationDefaults(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.listResult = []*domain.Booking{confirmedBooking()}
	repo.total = 1
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Limit:  0,
		Offset: -5,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "ABC1234", resp.Bookings[0].BookingReference)

	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestGetUserBookings_LimitCapped(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Limit:  500,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, 100, repo.lastFilter.Limit)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusCancelled, *repo.lastFilter.Status)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("eaten"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_InvalidUser(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkCompleted(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking())
	svc := NewService(repo, nopLogger{})

	resp, err := svc.MarkCompleted(context.Background(), "ABC1234", 100)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusCompleted, repo.byRef["ABC1234"].Status)
}

func TestMarkNoShow(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking())
	svc := NewService(repo, nopLogger{})

	resp, err := svc.MarkNoShow(context.Background(), "ABC1234", 100)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
}

func TestMarkCompleted_NotConfirmed(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	svc := NewService(newFakeBookingRepo(booking), nopLogger{})

	_, err := svc.MarkCompleted(context.Background(), "ABC1234", 100)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMarkNoShow_AccessDenied(t *testing.T) {
	svc := NewService(newFakeBookingRepo(confirmedBooking()), nopLogger{})

	_, err := svc.MarkNoShow(context.Background(), "ABC1234", 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancellationReasons(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	reasons := svc.CancellationReasons()
	require.Len(t, reasons, len(domain.CancellationReasons))
	assert.Equal(t, domain.CancellationReasons[0].ID, reasons[0].ID)
	assert.Equal(t, domain.CancellationReasons[0].Reason, reasons[0].Reason)
	assert.NotEmpty(t, reasons[0].Description)
}
