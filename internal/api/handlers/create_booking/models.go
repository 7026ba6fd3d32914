package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RestaurantID    int64   `json:"restaurantId"`
	VisitDate       string  `json:"visitDate"` // "2026-09-15"
	VisitTime       string  `json:"visitTime"` // "19:30"
	PartySize       int     `json:"partySize"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerMobile  string  `json:"customerMobile"`
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
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	visitDate, err := time.Parse(domain.DateFormat, r.VisitDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	visitTime, err := types.NewTimeStringFromString(r.VisitTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		RestaurantID:    r.RestaurantID,
		VisitDate:       visitDate,
		VisitTime:       visitTime,
		PartySize:       r.PartySize,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerMobile:  r.CustomerMobile,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
