package bookings

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByUserWithFilter(ctx context.Context, filter domain.BookingHistoryFilter) ([]*domain.Booking, error)
	CountByUserWithFilter(ctx context.Context, filter domain.BookingHistoryFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
