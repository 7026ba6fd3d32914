package cancel_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TableBookingService/internal/queue"
)

// Фейки для тестов

type fakeBookingRepo struct {
	mu    sync.Mutex
	byRef map[string]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{byRef: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		f.byRef[b.BookingReference] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.byRef[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reasonID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.byRef {
		if b.ID == id {
			b.Status = domain.StatusCancelled
			b.CancellationReasonID = &reasonID
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

type fakeLedger struct {
	mu       sync.Mutex
	counts   map[domain.SlotKey]int
	releases int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{counts: make(map[domain.SlotKey]int)}
}

func (f *fakeLedger) Release(_ context.Context, key domain.SlotKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.counts[key] > 0 {
		f.counts[key]--
	}
	f.releases++
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.BookingCancelledEvent
}

func (f *fakePublisher) BookingCancelled(_ context.Context, event queue.BookingCancelledEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
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

type testEnv struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	ledger    *fakeLedger
	publisher *fakePublisher
}

func newTestEnv(booking *domain.Booking) *testEnv {
	repo := newFakeBookingRepo(booking)
	ledger := newFakeLedger()
	if booking != nil {
		ledger.counts[booking.Slot()] = 1
	}
	publisher := &fakePublisher{}

	uc := NewUseCase(repo, ledger, publisher, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)}

	return &testEnv{uc: uc, repo: repo, ledger: ledger, publisher: publisher}
}

func TestExecute_CancelReleasesSlot(t *testing.T) {
	booking := confirmedBooking()
	env := newTestEnv(booking)

	resp, err := env.uc.Execute(context.Background(), &Request{
		BookingReference:     "ABC1234",
		UserID:               100,
		CancellationReasonID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, int64(1), resp.CancellationReasonID)
	assert.NotEmpty(t, resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)

	assert.Equal(t, 0, env.ledger.counts[booking.Slot()])
	assert.Equal(t, 1, env.ledger.releases)

	stored, getErr := env.repo.GetByReference(context.Background(), "ABC1234")
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestExecute_DoubleCancelReleasesOnce(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	req := &Request{
		BookingReference:     "ABC1234",
		UserID:               100,
		CancellationReasonID: 2,
	}

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Место освобождено ровно один раз
	assert.Equal(t, 1, env.ledger.releases)
	assert.Len(t, env.publisher.events, 1)
}

func TestExecute_PublishesEventWithReasonText(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference:     "ABC1234",
		UserID:               100,
		CancellationReasonID: 3,
	})
	require.NoError(t, err)

	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, "ABC1234", event.BookingReference)
	assert.Equal(t, int64(100), event.UserID)
	assert.Equal(t, "2026-09-18", event.VisitDate)
	assert.Equal(t, "19:30", event.VisitTime)

	reason, ok := domain.CancellationReasonByID(3)
	require.True(t, ok)
	assert.Equal(t, reason.Reason, event.CancellationReason)
}

func TestExecute_UnknownReason(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference:     "ABC1234",
		UserID:               100,
		CancellationReasonID: 99,
	})
	assert.ErrorIs(t, err, ErrInvalidReason)
	assert.Equal(t, 0, env.ledger.releases)
}

func TestExecute_Forbidden(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference:     "ABC1234",
		UserID:               200,
		CancellationReasonID: 1,
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, env.ledger.releases)
}

func TestExecute_BookingNotFound(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference:     "ZZZ9999",
		UserID:               100,
		CancellationReasonID: 1,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CompletedBookingRejected(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCompleted
	env := newTestEnv(booking)

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference:     "ABC1234",
		UserID:               100,
		CancellationReasonID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 0, env.ledger.releases)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference:     "",
		UserID:               100,
		CancellationReasonID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.uc.Execute(context.Background(), &Request{
		BookingReference:     "ABC1234",
		UserID:               0,
		CancellationReasonID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
