package update_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingReference == "" {
		return fmt.Errorf("%w: bookingReference is required", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Хотя бы одно поле должно меняться
	if req.VisitDate == nil && req.VisitTime == nil && req.PartySize == nil && req.SpecialRequests == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.VisitTime != nil {
		if err := req.VisitTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid visitTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.PartySize != nil && *req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: party size must be at least %d", ErrInvalidPartySize, domain.MinPartySize)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests exceeds %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	return nil
}

// validateVisitSlot проверяет, что целевые дата и время визита не в прошлом
// и попадают в сетку слотов ресторана
func validateVisitSlot(
	visitDate time.Time,
	visitTime types.TimeString,
	restaurant *restaurantcatalog.Restaurant,
	now time.Time,
) error {
	if isDateInPast(visitDate, now) {
		return ErrInvalidDate
	}

	// Сегодняшняя дата - слот должен быть строго в будущем
	if isSameDay(visitDate, now) {
		currentTime := types.NewTimeString(now)
		if !visitTime.IsAfter(currentTime) {
			return fmt.Errorf("%w: visit time already passed", ErrInvalidDate)
		}
	}

	schedule := restaurant.ScheduleForWeekday(visitDate.Weekday())
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return ErrRestaurantClosed
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid opening hours: %v", ErrInternal, err)
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid opening hours: %v", ErrInternal, err)
	}

	if visitTime.IsBefore(openTime) {
		return fmt.Errorf("%w: before opening time", ErrInvalidSlot)
	}

	// Слот должен целиком помещаться до закрытия
	slotEnd, err := visitTime.AddMinutes(restaurant.SlotGranularityMinutes)
	if err != nil {
		return fmt.Errorf("%w: invalid slot end", ErrInvalidSlot)
	}
	if slotEnd.IsAfter(closeTime) {
		return fmt.Errorf("%w: after closing time", ErrInvalidSlot)
	}

	// Время должно быть выровнено по сетке слотов от открытия
	openMinutes, err := openTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid opening hours: %v", ErrInternal, err)
	}
	visitMinutes, err := visitTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid visitTime: %v", ErrInvalidInput, err)
	}
	if (visitMinutes-openMinutes)%restaurant.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: not aligned to %d-minute grid", ErrInvalidSlot, restaurant.SlotGranularityMinutes)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
