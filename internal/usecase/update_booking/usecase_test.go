package update_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	ledgerRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
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

func (f *fakeBookingRepo) UpdateVisit(_ context.Context, id int64, upd domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ref, b := range f.byRef {
		if b.ID == id {
			updated := upd
			updated.ID = id
			updated.UpdatedAt = time.Now()
			f.byRef[ref] = &updated
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

// fakeLedger повторяет семантику Move: сначала занять новое место,
// потом освободить старое
type fakeLedger struct {
	mu     sync.Mutex
	counts map[domain.SlotKey]int
	moves  int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{counts: make(map[domain.SlotKey]int)}
}

func (f *fakeLedger) Move(_ context.Context, oldKey, newKey domain.SlotKey, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.counts[newKey] >= capacity {
		return ledgerRepo.ErrSlotFull
	}
	f.counts[newKey]++
	if f.counts[oldKey] > 0 {
		f.counts[oldKey]--
	}
	f.moves++
	return nil
}

func (f *fakeLedger) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0
	for _, c := range f.counts {
		sum += c
	}
	return sum
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeCatalog struct {
	restaurant *restaurantcatalog.Restaurant
	err        error
}

func (f *fakeCatalog) GetRestaurant(_ context.Context, _ int64) (*restaurantcatalog.Restaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.restaurant, nil
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

func testRestaurant() *restaurantcatalog.Restaurant {
	day := restaurantcatalog.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("12:00"),
		CloseTime: ptr.Ptr("22:00"),
	}
	return &restaurantcatalog.Restaurant{
		ID:                     1,
		Name:                   "Trattoria",
		Timezone:               "UTC",
		MaxPartySize:           8,
		TablesPerSlot:          2,
		SlotGranularityMinutes: 30,
		OpeningHours: restaurantcatalog.OpeningHours{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
			Saturday:  day,
		},
	}
}

func confirmedBooking() *domain.Booking {
	// 18 сентября 2026 - пятница
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
	uc     *UseCase
	repo   *fakeBookingRepo
	ledger *fakeLedger
}

func newTestEnv(booking *domain.Booking) *testEnv {
	repo := newFakeBookingRepo(booking)
	ledger := newFakeLedger()
	if booking != nil {
		ledger.counts[booking.Slot()] = 1
	}

	uc := NewUseCase(repo, ledger, &fakeCatalog{restaurant: testRestaurant()}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)}

	return &testEnv{uc: uc, repo: repo, ledger: ledger}
}

func TestExecute_MoveToAnotherSlot(t *testing.T) {
	booking := confirmedBooking()
	env := newTestEnv(booking)
	oldKey := booking.Slot()

	newTime := types.TimeString("20:00")
	resp, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
		VisitTime:        &newTime,
	})
	require.NoError(t, err)

	assert.Equal(t, newTime, resp.VisitTime)

	// Старое место освобождено, новое занято, сумма мест не изменилась
	newKey := domain.SlotKey{RestaurantID: 1, Date: booking.VisitDate, Time: newTime}
	assert.Equal(t, 0, env.ledger.counts[oldKey])
	assert.Equal(t, 1, env.ledger.counts[newKey])
	assert.Equal(t, 1, env.ledger.total())
}

func TestExecute_PartySizeOnlyDoesNotTouchLedger(t *testing.T) {
	booking := confirmedBooking()
	env := newTestEnv(booking)

	resp, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
		PartySize:        ptr.Ptr(6),
	})
	require.NoError(t, err)

	assert.Equal(t, 6, resp.PartySize)
	assert.Equal(t, 0, env.ledger.moves)
	assert.Equal(t, 1, env.ledger.counts[booking.Slot()])
}

func TestExecute_SpecialRequestsOnly(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	resp, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
		SpecialRequests:  ptr.Ptr("window table please"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.SpecialRequests)
	assert.Equal(t, "window table please", *resp.SpecialRequests)
	assert.Equal(t, 0, env.ledger.moves)
}

func TestExecute_TargetSlotFullKeepsOriginal(t *testing.T) {
	booking := confirmedBooking()
	env := newTestEnv(booking)

	// Целевой слот заполнен до вместимости (2)
	newTime := types.TimeString("20:00")
	fullKey := domain.SlotKey{RestaurantID: 1, Date: booking.VisitDate, Time: newTime}
	env.ledger.counts[fullKey] = 2

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
		VisitTime:        &newTime,
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Бронирование осталось на старом слоте
	current, getErr := env.repo.GetByReference(context.Background(), "ABC1234")
	require.NoError(t, getErr)
	assert.Equal(t, types.TimeString("19:30"), current.VisitTime)
	assert.Equal(t, 1, env.ledger.counts[booking.Slot()])
}

func TestExecute_BookingNotFound(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ZZZ9999",
		UserID:           100,
		PartySize:        ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Forbidden(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           200,
		PartySize:        ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	env := newTestEnv(booking)

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
		PartySize:        ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestExecute_NothingToUpdate(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PartySizeAboveLimit(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
		PartySize:        ptr.Ptr(9),
	})
	assert.ErrorIs(t, err, ErrInvalidPartySize)
}

func TestExecute_MoveToMisalignedTimeRejected(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	newTime := types.TimeString("19:40")
	_, err := env.uc.Execute(context.Background(), &Request{
		BookingReference: "ABC1234",
		UserID:           100,
		VisitTime:        &newTime,
	})
	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.Equal(t, 0, env.ledger.moves)
}
