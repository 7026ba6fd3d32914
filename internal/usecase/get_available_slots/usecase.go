package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
)

// UseCase use case расчёта доступных слотов ресторана на дату
type UseCase struct {
	occupancyRepo OccupancyRepository
	catalog       RestaurantCatalogClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	occupancyRepo OccupancyRepository,
	catalog RestaurantCatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		occupancyRepo: occupancyRepo,
		catalog:       catalog,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Чистое чтение: занятость берется из счётчиков леджера, ничего не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: restaurant=%d, date=%s, party_size=%d",
		req.RestaurantID, req.Date.Format(domain.DateFormat), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресторан из каталога
	restaurant, err := uc.catalog.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrRestaurantNotFound) {
			uc.logger.Warn("GetAvailableSlots: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// 3. Текущее время в таймзоне ресторана - от него считаются
	// "прошедшие даты" и "прошедшие слоты сегодня"
	now := uc.timeProvider.Now().In(restaurant.Location())

	// 4. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Размер компании в пределах лимита ресторана
	if err := validatePartySize(req.PartySize, restaurant); err != nil {
		uc.logger.Warn("GetAvailableSlots: party size validation failed: %v", err)
		return nil, err
	}

	// 6. Расписание на день недели; закрытый день - пустой список, не ошибка
	schedule := restaurant.ScheduleForWeekday(req.Date.Weekday())
	if !schedule.IsOpen {
		uc.logger.Info("GetAvailableSlots: restaurant id=%d is closed on %s",
			req.RestaurantID, req.Date.Format(domain.DateFormat))
		return &Response{
			RestaurantID: req.RestaurantID,
			Date:         req.Date,
			PartySize:    req.PartySize,
			Slots:        []Slot{},
		}, nil
	}

	// 7. Генерируем времена слотов
	times, err := generateTimeSlots(schedule, restaurant.SlotGranularityMinutes, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 8. Читаем занятость слотов на дату
	occupancy, err := uc.occupancyRepo.GetDayOccupancy(ctx, req.RestaurantID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupancy: %v", ErrInternal, err)
	}

	// 9. Собираем результат
	slots := buildSlots(times, restaurant.TablesPerSlot, occupancy)

	uc.logger.Info("GetAvailableSlots: %d slots for restaurant=%d, date=%s",
		len(slots), req.RestaurantID, req.Date.Format(domain.DateFormat))

	return &Response{
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		PartySize:    req.PartySize,
		Slots:        slots,
	}, nil
}
