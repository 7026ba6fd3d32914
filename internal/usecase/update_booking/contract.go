package update_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	UpdateVisit(ctx context.Context, id int64, upd domain.Booking) error
}

// LedgerRepository интерфейс леджера занятости слотов
type LedgerRepository interface {
	Move(ctx context.Context, oldKey, newKey domain.SlotKey, capacity int) error
}

// RestaurantCatalogClient интерфейс клиента каталога ресторанов
type RestaurantCatalogClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*restaurantcatalog.Restaurant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
