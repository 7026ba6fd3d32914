package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// generateTimeSlots генерирует все времена слотов на день с шагом granularity
// от открытия до закрытия ресторана. Слот, заканчивающийся позже закрытия,
// не включается. Для сегодняшней даты отбрасываются слоты, чьё время уже
// прошло по часам ресторана (now передается в таймзоне ресторана).
func generateTimeSlots(
	schedule restaurantcatalog.DaySchedule,
	granularityMinutes int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	// Закрытый день - пустой результат, не ошибка
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, err
	}

	// Шаг 1: все слоты от открытия до закрытия с фиксированным шагом
	allSlots := make([]types.TimeString, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		slotEnd, err := currentSlot.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot, err = currentSlot.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, err
		}
	}

	// Шаг 2: не сегодня - все слоты подходят
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: сегодня - отбрасываем уже прошедшие слоты
	currentTime := types.NewTimeString(now)
	futureSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if slot.IsAfter(currentTime) {
			futureSlots = append(futureSlots, slot)
		}
	}

	return futureSlots, nil
}

// buildSlots собирает слоты с вместимостью из счётчиков занятости.
// Слоты без строки в occupancy полностью свободны.
func buildSlots(
	times []types.TimeString,
	capacity int,
	occupancy map[types.TimeString]int,
) []Slot {
	result := make([]Slot, len(times))

	for i, start := range times {
		slot := domain.TimeSlot{
			StartTime:   start,
			Capacity:    capacity,
			BookedCount: occupancy[start],
		}

		result[i] = Slot{
			StartTime:      slot.StartTime,
			Capacity:       slot.Capacity,
			BookedCount:    slot.BookedCount,
			AvailableSpots: slot.AvailableSpots(),
			Available:      slot.Available(),
		}
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
