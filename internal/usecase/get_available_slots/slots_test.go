package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/pkg/ptr"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

func openSchedule(open, close string) restaurantcatalog.DaySchedule {
	return restaurantcatalog.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
	}
}

func TestGenerateTimeSlots_FullDay(t *testing.T) {
	// 12:00-22:00 с шагом 30 минут: последний слот 21:30, его конец 22:00
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(openSchedule("12:00", "22:00"), 30, date, now)
	require.NoError(t, err)

	require.Len(t, slots, 20)
	assert.Equal(t, types.TimeString("12:00"), slots[0])
	assert.Equal(t, types.TimeString("21:30"), slots[len(slots)-1])
}

func TestGenerateTimeSlots_SlotMustEndByClose(t *testing.T) {
	// 10:00-11:45 с шагом 30 минут: слот 11:30 закончился бы в 12:00,
	// позже закрытия, поэтому не включается
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(openSchedule("10:00", "11:45"), 30, date, now)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00"}, slots)
}

func TestGenerateTimeSlots_ClosedDay(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(restaurantcatalog.DaySchedule{IsOpen: false}, 30, date, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_TodayFiltersPastSlots(t *testing.T) {
	// Сегодня в 18:10 по часам ресторана: слоты до 18:10 включительно отброшены
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 18, 10, 0, 0, time.UTC)

	slots, err := generateTimeSlots(openSchedule("12:00", "20:00"), 60, date, now)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"19:00"}, slots)
}

func TestGenerateTimeSlots_TodayExactSlotTimeExcluded(t *testing.T) {
	// Ровно 19:00 - слот 19:00 уже не предлагается, только строго будущие
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 19, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots(openSchedule("18:00", "21:00"), 60, date, now)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"20:00"}, slots)
}

func TestGenerateTimeSlots_InvalidScheduleTimes(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	_, err := generateTimeSlots(openSchedule("garbage", "22:00"), 30, date, now)
	assert.Error(t, err)
}

func TestBuildSlots(t *testing.T) {
	times := []types.TimeString{"19:00", "19:30", "20:00"}
	occupancy := map[types.TimeString]int{
		"19:00": 3,
		"19:30": 1,
	}

	slots := buildSlots(times, 3, occupancy)

	require.Len(t, slots, 3)

	// Полностью занятый слот
	assert.Equal(t, types.TimeString("19:00"), slots[0].StartTime)
	assert.Equal(t, 3, slots[0].BookedCount)
	assert.Equal(t, 0, slots[0].AvailableSpots)
	assert.False(t, slots[0].Available)

	// Частично занятый
	assert.Equal(t, 2, slots[1].AvailableSpots)
	assert.True(t, slots[1].Available)

	// Нет записи в occupancy - полностью свободен
	assert.Equal(t, 0, slots[2].BookedCount)
	assert.Equal(t, 3, slots[2].AvailableSpots)
	assert.True(t, slots[2].Available)
}
