package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/internal/queue"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

// LedgerRepository интерфейс леджера занятости слотов
type LedgerRepository interface {
	Reserve(ctx context.Context, key domain.SlotKey, capacity int) error
}

// RestaurantCatalogClient интерфейс клиента каталога ресторанов
type RestaurantCatalogClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*restaurantcatalog.Restaurant, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	BookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error
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
