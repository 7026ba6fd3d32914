package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Фейки для тестов

type fakeOccupancyRepo struct {
	occupancy map[types.TimeString]int
	err       error
}

func (f *fakeOccupancyRepo) GetDayOccupancy(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.occupancy, nil
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
			// Sunday закрыт
		},
	}
}

func newTestUseCase(repo *fakeOccupancyRepo, catalog *fakeCatalog, now time.Time) *UseCase {
	uc := NewUseCase(repo, catalog, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ReturnsSlotsWithOccupancy(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeOccupancyRepo{occupancy: map[types.TimeString]int{
		"19:00": 3,
		"19:30": 1,
	}}
	uc := newTestUseCase(repo, &fakeCatalog{restaurant: testRestaurant()}, now)

	// 18 сентября 2026 - пятница
	resp, err := uc.Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		PartySize:    4,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 20)

	bySlot := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		bySlot[s.StartTime] = s
	}

	assert.False(t, bySlot["19:00"].Available)
	assert.Equal(t, 0, bySlot["19:00"].AvailableSpots)
	assert.True(t, bySlot["19:30"].Available)
	assert.Equal(t, 2, bySlot["19:30"].AvailableSpots)
	assert.Equal(t, 3, bySlot["12:00"].AvailableSpots)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeOccupancyRepo{}, &fakeCatalog{restaurant: testRestaurant()}, now)

	// 20 сентября 2026 - воскресенье, ресторан закрыт
	resp, err := uc.Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		PartySize:    2,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_RestaurantNotFound(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeOccupancyRepo{}, &fakeCatalog{err: restaurantcatalog.ErrRestaurantNotFound}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RestaurantID: 42,
		Date:         time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		PartySize:    2,
	})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeOccupancyRepo{}, &fakeCatalog{restaurant: testRestaurant()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		PartySize:    2,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PartySizeAboveLimit(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeOccupancyRepo{}, &fakeCatalog{restaurant: testRestaurant()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		PartySize:    9,
	})
	assert.ErrorIs(t, err, ErrInvalidPartySize)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeOccupancyRepo{}, &fakeCatalog{restaurant: testRestaurant()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		RestaurantID: 0,
		Date:         time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		PartySize:    2,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
