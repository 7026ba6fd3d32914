package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	ledgerRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/internal/queue"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
)

// Фейки для тестов

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	byRef    map[string]*domain.Booking
	existing map[string]bool // ссылки, считающиеся занятыми в ReferenceExists
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byRef:    make(map[string]*domain.Booking),
		existing: make(map[string]bool),
	}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.byRef[created.BookingReference] = &created
	return &created, nil
}

func (f *fakeBookingRepo) ReferenceExists(_ context.Context, reference string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existing[reference] {
		return true, nil
	}
	_, ok := f.byRef[reference]
	return ok, nil
}

// fakeLedger считает занятость слотов в памяти; Reserve отклоняет запись
// при исчерпанной вместимости, как капасити-гард в SQL
type fakeLedger struct {
	mu     sync.Mutex
	counts map[domain.SlotKey]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{counts: make(map[domain.SlotKey]int)}
}

func (f *fakeLedger) Reserve(_ context.Context, key domain.SlotKey, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.counts[key] >= capacity {
		return ledgerRepo.ErrSlotFull
	}
	f.counts[key]++
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.BookingCreatedEvent
}

func (f *fakePublisher) BookingCreated(_ context.Context, event queue.BookingCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

// fakeTxManager сериализует конкурентные транзакции мьютексом,
// имитируя сериализуемый уровень изоляции
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
		TablesPerSlot:          3,
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

type testEnv struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	ledger    *fakeLedger
	publisher *fakePublisher
}

func newTestEnv(catalog *fakeCatalog, now time.Time) *testEnv {
	repo := newFakeBookingRepo()
	ledger := newFakeLedger()
	publisher := &fakePublisher{}

	uc := NewUseCase(repo, ledger, catalog, publisher, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &testEnv{uc: uc, repo: repo, ledger: ledger, publisher: publisher}
}

func validRequest(userID int64) *Request {
	// 18 сентября 2026 - пятница
	return &Request{
		UserID:         userID,
		RestaurantID:   1,
		VisitDate:      time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		VisitTime:      "19:30",
		PartySize:      4,
		CustomerName:   "John Smith",
		CustomerEmail:  "john@example.com",
		CustomerMobile: "+447700900123",
	}
}

func testNow() time.Time {
	return time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	env := newTestEnv(&fakeCatalog{restaurant: testRestaurant()}, testNow())

	resp, err := env.uc.Execute(context.Background(), validRequest(100))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Len(t, resp.BookingReference, domain.BookingReferenceLength)
	assert.Equal(t, int64(100), resp.UserID)
	assert.Equal(t, 4, resp.PartySize)

	// Место в слоте занято
	key := domain.SlotKey{
		RestaurantID: 1,
		Date:         resp.VisitDate,
		Time:         resp.VisitTime,
	}
	assert.Equal(t, 1, env.ledger.counts[key])

	// Событие опубликовано
	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, resp.BookingReference, env.publisher.events[0].BookingReference)
}

func TestExecute_SlotFull(t *testing.T) {
	env := newTestEnv(&fakeCatalog{restaurant: testRestaurant()}, testNow())

	// Вместимость 3: три бронирования проходят, четвертое отклоняется
	for i := int64(1); i <= 3; i++ {
		_, err := env.uc.Execute(context.Background(), validRequest(i))
		require.NoError(t, err)
	}

	_, err := env.uc.Execute(context.Background(), validRequest(4))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Отклоненное бронирование не сохранено и события нет
	assert.Len(t, env.repo.byRef, 3)
	assert.Len(t, env.publisher.events, 3)
}

func TestExecute_ConcurrentCreatesNeverOverbook(t *testing.T) {
	env := newTestEnv(&fakeCatalog{restaurant: testRestaurant()}, testNow())

	const attempts = 20
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := env.uc.Execute(context.Background(), validRequest(userID))
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotNotAvailable):
			rejected++
		}
	}

	// Ровно вместимость слота, ни одним больше
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, attempts-3, rejected)

	key := domain.SlotKey{
		RestaurantID: 1,
		Date:         time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Time:         "19:30",
	}
	assert.Equal(t, 3, env.ledger.counts[key])
}

func TestExecute_RestaurantNotFound(t *testing.T) {
	env := newTestEnv(&fakeCatalog{err: restaurantcatalog.ErrRestaurantNotFound}, testNow())

	_, err := env.uc.Execute(context.Background(), validRequest(1))
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestExecute_RestaurantClosed(t *testing.T) {
	env := newTestEnv(&fakeCatalog{restaurant: testRestaurant()}, testNow())

	// 20 сентября 2026 - воскресенье
	req := validRequest(1)
	req.VisitDate = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRestaurantClosed)
}

func TestExecute_SlotValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "date in past",
			mutate:  func(r *Request) { r.VisitDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "before opening",
			mutate:  func(r *Request) { r.VisitTime = "11:30" },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "slot would end after close",
			mutate:  func(r *Request) { r.VisitTime = "21:45" },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "not aligned to grid",
			mutate:  func(r *Request) { r.VisitTime = "19:15" },
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "party size above limit",
			mutate:  func(r *Request) { r.PartySize = 9 },
			wantErr: ErrInvalidPartySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(&fakeCatalog{restaurant: testRestaurant()}, testNow())

			req := validRequest(1)
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_InputValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{name: "zero user", mutate: func(r *Request) { r.UserID = 0 }, wantErr: ErrInvalidInput},
		{name: "zero restaurant", mutate: func(r *Request) { r.RestaurantID = 0 }, wantErr: ErrInvalidInput},
		{name: "empty name", mutate: func(r *Request) { r.CustomerName = "" }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.CustomerEmail = "not-an-email" }, wantErr: ErrInvalidInput},
		{name: "bad mobile", mutate: func(r *Request) { r.CustomerMobile = "12345" }, wantErr: ErrInvalidInput},
		{name: "party size zero", mutate: func(r *Request) { r.PartySize = 0 }, wantErr: ErrInvalidPartySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(&fakeCatalog{restaurant: testRestaurant()}, testNow())

			req := validRequest(1)
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateReference_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := generateReference()
		require.NoError(t, err)
		require.Len(t, ref, domain.BookingReferenceLength)
		for _, c := range ref {
			assert.Contains(t, referenceAlphabet, string(c))
		}
		seen[ref] = true
	}
	// Коллизии на сотне ссылок практически невозможны
	assert.Greater(t, len(seen), 95)
}
