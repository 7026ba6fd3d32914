// Package queue события бронирования, публикуемые в RabbitMQ.
package queue

import "time"

// Имена очередей (durable, объявляются при публикации)
const (
	QueueBookingCreated   = "booking.created"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingCreatedEvent публикуется после успешного создания бронирования
type BookingCreatedEvent struct {
	BookingReference string    `json:"booking_reference"`
	RestaurantID     int64     `json:"restaurant_id"`
	UserID           int64     `json:"user_id"`
	VisitDate        string    `json:"visit_date"` // YYYY-MM-DD
	VisitTime        string    `json:"visit_time"` // HH:MM
	PartySize        int       `json:"party_size"`
	CustomerEmail    string    `json:"customer_email"`
	CreatedAt        time.Time `json:"created_at"`
}

// BookingCancelledEvent публикуется после отмены бронирования
type BookingCancelledEvent struct {
	BookingReference   string    `json:"booking_reference"`
	RestaurantID       int64     `json:"restaurant_id"`
	UserID             int64     `json:"user_id"`
	VisitDate          string    `json:"visit_date"`
	VisitTime          string    `json:"visit_time"`
	CancellationReason string    `json:"cancellation_reason"`
	CancelledAt        time.Time `json:"cancelled_at"`
}
