package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-TableBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReasonID int64 `json:"cancellationReasonId"`
}

// CancelledBookingResponse HTTP response model
type CancelledBookingResponse struct {
	ID                   int64   `json:"id"`
	BookingReference     string  `json:"bookingReference"`
	UserID               int64   `json:"userId"`
	RestaurantID         int64   `json:"restaurantId"`
	VisitDate            string  `json:"visitDate"`
	VisitTime            string  `json:"visitTime"`
	PartySize            int     `json:"partySize"`
	Status               string  `json:"status"`
	CancellationReasonID int64   `json:"cancellationReasonId"`
	CancellationReason   string  `json:"cancellationReason"`
	CancelledAt          *string `json:"cancelledAt,omitempty"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelledBookingResponse {
	out := &CancelledBookingResponse{
		ID:                   resp.ID,
		BookingReference:     resp.BookingReference,
		UserID:               resp.UserID,
		RestaurantID:         resp.RestaurantID,
		VisitDate:            resp.VisitDate.Format(domain.DateFormat),
		VisitTime:            resp.VisitTime.String(),
		PartySize:            resp.PartySize,
		Status:               resp.Status,
		CancellationReasonID: resp.CancellationReasonID,
		CancellationReason:   resp.CancellationReason,
	}

	if resp.CancelledAt != nil {
		cancelledStr := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledStr
	}

	return out
}
