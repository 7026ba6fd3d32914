package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: party size must be at least %d", ErrInvalidPartySize, domain.MinPartySize)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом (по часам ресторана)
func validateDate(requestDate time.Time, now time.Time) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
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
