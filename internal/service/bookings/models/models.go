package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение истории бронирований пользователя
type GetUserBookingsRequest struct {
	UserID    int64      `json:"userId"`
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Limit     int        `json:"limit,omitempty"`     // Размер страницы
	Offset    int        `json:"offset,omitempty"`    // Смещение
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.BookingHistoryFilter, error) {
	filter := domain.BookingHistoryFilter{
		UserID:    r.UserID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"bookingReference"`
	UserID           int64  `json:"userId"`
	RestaurantID     int64  `json:"restaurantId"`
	VisitDate        string `json:"visitDate"` // "2026-09-15"
	VisitTime        string `json:"visitTime"` // "19:30"
	PartySize        int    `json:"partySize"`
	Status           string `json:"status"`

	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerMobile  string  `json:"customerMobile"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований и пагинацией
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// CancellationReasonResponse элемент справочника причин отмены
type CancellationReasonResponse struct {
	ID          int64  `json:"id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		UserID:           b.UserID,
		RestaurantID:     b.RestaurantID,
		VisitDate:        b.VisitDate.Format(domain.DateFormat),
		VisitTime:        b.VisitTime.String(),
		PartySize:        b.PartySize,
		Status:           string(b.Status),
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerMobile:   b.CustomerMobile,
		SpecialRequests:  b.SpecialRequests,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	// Разворачиваем причину отмены из справочника
	if b.CancellationReasonID != nil {
		if reason, ok := domain.CancellationReasonByID(*b.CancellationReasonID); ok {
			resp.CancellationReason = &reason.Reason
		}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total, limit, offset int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// FromDomainCancellationReasons конвертирует справочник причин отмены в DTO
func FromDomainCancellationReasons(reasons []domain.CancellationReason) []CancellationReasonResponse {
	resp := make([]CancellationReasonResponse, len(reasons))
	for i, r := range reasons {
		resp[i] = CancellationReasonResponse{
			ID:          r.ID,
			Reason:      r.Reason,
			Description: r.Description,
		}
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
