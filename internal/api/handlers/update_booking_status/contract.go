package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/service/bookings/models"
)

type BookingService interface {
	MarkCompleted(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error)
	MarkNoShow(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
