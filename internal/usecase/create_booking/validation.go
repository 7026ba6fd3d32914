package create_booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.VisitDate.IsZero() {
		return fmt.Errorf("%w: visitDate is required", ErrInvalidInput)
	}

	// Проверяем, что время визита указано
	if req.VisitTime.IsZero() {
		return fmt.Errorf("%w: visitTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.VisitTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid visitTime format: %v", ErrInvalidInput, err)
	}

	if req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: party size must be at least %d", ErrInvalidPartySize, domain.MinPartySize)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if err := validate.Var(req.CustomerEmail, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
	}

	if err := validate.Var(req.CustomerMobile, "required,e164"); err != nil {
		return fmt.Errorf("%w: customerMobile must be in E.164 format", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests exceeds %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	return nil
}

// validatePartySize проверяет размер компании против лимита ресторана
func validatePartySize(partySize int, restaurant *restaurantcatalog.Restaurant) error {
	if partySize > restaurant.MaxPartySize {
		return fmt.Errorf("%w: restaurant accepts at most %d guests", ErrInvalidPartySize, restaurant.MaxPartySize)
	}
	return nil
}

// validateVisitSlot проверяет, что дата и время визита не в прошлом
// и что время попадает в сетку слотов ресторана: внутри рабочих часов,
// выровнено по шагу сетки, и слот целиком помещается до закрытия.
func validateVisitSlot(
	req *Request,
	restaurant *restaurantcatalog.Restaurant,
	schedule restaurantcatalog.DaySchedule,
	now time.Time,
) error {
	if isDateInPast(req.VisitDate, now) {
		return ErrInvalidDate
	}

	// Сегодняшняя дата - слот должен быть строго в будущем
	if isSameDay(req.VisitDate, now) {
		currentTime := types.NewTimeString(now)
		if !req.VisitTime.IsAfter(currentTime) {
			return fmt.Errorf("%w: visit time already passed", ErrInvalidDate)
		}
	}

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

	if req.VisitTime.IsBefore(openTime) {
		return fmt.Errorf("%w: before opening time", ErrInvalidSlot)
	}

	// Слот должен целиком помещаться до закрытия
	slotEnd, err := req.VisitTime.AddMinutes(restaurant.SlotGranularityMinutes)
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
	visitMinutes, err := req.VisitTime.Minutes()
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
