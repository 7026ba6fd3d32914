package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// OccupancyRepository интерфейс чтения счётчиков занятости слотов
type OccupancyRepository interface {
	GetDayOccupancy(ctx context.Context, restaurantID int64, date time.Time) (map[types.TimeString]int, error)
}

// RestaurantCatalogClient интерфейс клиента каталога ресторанов
type RestaurantCatalogClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*restaurantcatalog.Restaurant, error)
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
