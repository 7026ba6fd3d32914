package get_available_slots

import (
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	getSlots "github.com/m04kA/SMC-TableBookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime      string `json:"startTime"` // "19:30"
	Capacity       int    `json:"capacity"`
	BookedCount    int    `json:"bookedCount"`
	AvailableSpots int    `json:"availableSpots"`
	Available      bool   `json:"available"`
}

// AvailabilityResponse HTTP модель ответа с доступными слотами
type AvailabilityResponse struct {
	RestaurantID int64          `json:"restaurantId"`
	Date         string         `json:"date"` // "2026-09-15"
	PartySize    int            `json:"partySize"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:      s.StartTime.String(),
			Capacity:       s.Capacity,
			BookedCount:    s.BookedCount,
			AvailableSpots: s.AvailableSpots,
			Available:      s.Available,
		}
	}

	return &AvailabilityResponse{
		RestaurantID: resp.RestaurantID,
		Date:         resp.Date.Format(domain.DateFormat),
		PartySize:    resp.PartySize,
		Slots:        slots,
	}
}
