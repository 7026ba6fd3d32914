package domain

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// BookingStatus represents the status of a table booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a restaurant table reservation
type Booking struct {
	ID               int64
	BookingReference string // Уникальный внешний идентификатор (7 символов, A-Z0-9)
	RestaurantID     int64
	UserID           int64
	VisitDate        time.Time
	VisitTime        types.TimeString
	PartySize        int
	Status           BookingStatus

	CustomerName   string
	CustomerEmail  string
	CustomerMobile string

	SpecialRequests *string

	CancellationReasonID *int64
	CancelledAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies slot capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can be edited
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// Slot returns the slot key occupied by this booking
func (b *Booking) Slot() SlotKey {
	return SlotKey{
		RestaurantID: b.RestaurantID,
		Date:         b.VisitDate,
		Time:         b.VisitTime,
	}
}

// BookingHistoryFilter фильтр для выборки истории бронирований пользователя
type BookingHistoryFilter struct {
	UserID    int64          // Обязательный параметр
	Status    *BookingStatus // Фильтр по статусу (опционально)
	StartDate *time.Time     // Начало периода по visit_date (опционально)
	EndDate   *time.Time     // Конец периода по visit_date (опционально)
	Limit     int            // 0 = без ограничения
	Offset    int
}
