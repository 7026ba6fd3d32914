package update_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	updateBooking "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model. Все поля опциональны,
// отсутствующие остаются без изменений.
type UpdateBookingRequest struct {
	VisitDate       *string `json:"visitDate,omitempty"` // "2026-09-15"
	VisitTime       *string `json:"visitTime,omitempty"` // "19:30"
	PartySize       *int    `json:"partySize,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	BookingReference string  `json:"bookingReference"`
	UserID           int64   `json:"userId"`
	RestaurantID     int64   `json:"restaurantId"`
	VisitDate        string  `json:"visitDate"`
	VisitTime        string  `json:"visitTime"`
	PartySize        int     `json:"partySize"`
	Status           string  `json:"status"`
	CustomerName     string  `json:"customerName"`
	CustomerEmail    string  `json:"customerEmail"`
	CustomerMobile   string  `json:"customerMobile"`
	SpecialRequests  *string `json:"specialRequests,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(reference string, userID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		BookingReference: reference,
		UserID:           userID,
		PartySize:        r.PartySize,
		SpecialRequests:  r.SpecialRequests,
	}

	if r.VisitDate != nil {
		visitDate, err := time.Parse(domain.DateFormat, *r.VisitDate)
		if err != nil {
			return nil, err
		}
		req.VisitDate = &visitDate
	}

	if r.VisitTime != nil {
		visitTime, err := types.NewTimeStringFromString(*r.VisitTime)
		if err != nil {
			return nil, err
		}
		req.VisitTime = &visitTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		BookingReference: resp.BookingReference,
		UserID:           resp.UserID,
		RestaurantID:     resp.RestaurantID,
		VisitDate:        resp.VisitDate.Format(domain.DateFormat),
		VisitTime:        resp.VisitTime.String(),
		PartySize:        resp.PartySize,
		Status:           resp.Status,
		CustomerName:     resp.CustomerName,
		CustomerEmail:    resp.CustomerEmail,
		CustomerMobile:   resp.CustomerMobile,
		SpecialRequests:  resp.SpecialRequests,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
