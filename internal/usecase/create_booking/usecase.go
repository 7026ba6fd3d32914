package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
	ledgerRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-TableBookingService/internal/queue"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	ledgerRepo  LedgerRepository
	catalog     RestaurantCatalogClient
	publisher   EventPublisher
	txManager   TransactionManager
	timeProvider TimeProvider
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledgerRepo LedgerRepository,
	catalog RestaurantCatalogClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledgerRepo:   ledgerRepo,
		catalog:      catalog,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Резервирование места в слоте и вставка строки бронирования выполняются
// в одной сериализуемой транзакции: либо происходят обе, либо ни одна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, restaurant=%d, date=%s, time=%s, party_size=%d",
		req.UserID, req.RestaurantID, req.VisitDate.Format(domain.DateFormat), req.VisitTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресторан из каталога
	restaurant, err := uc.catalog.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrRestaurantNotFound) {
			uc.logger.Warn("CreateBooking: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// 3. Размер компании в пределах лимита ресторана
	if err := validatePartySize(req.PartySize, restaurant); err != nil {
		uc.logger.Warn("CreateBooking: party size validation failed: %v", err)
		return nil, err
	}

	// 4. Время визита попадает в сетку слотов ресторана
	now := uc.timeProvider.Now().In(restaurant.Location())
	schedule := restaurant.ScheduleForWeekday(req.VisitDate.Weekday())
	if err := validateVisitSlot(req, restaurant, schedule, now); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 5. Генерируем уникальный код бронирования
	reference, err := uc.uniqueReference(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate reference: %v", err)
		return nil, fmt.Errorf("%w: failed to generate reference: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		BookingReference: reference,
		RestaurantID:     req.RestaurantID,
		UserID:           req.UserID,
		VisitDate:        req.VisitDate,
		VisitTime:        req.VisitTime,
		PartySize:        req.PartySize,
		Status:           domain.StatusConfirmed,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerMobile:   req.CustomerMobile,
		SpecialRequests:  req.SpecialRequests,
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Резервируем место и сохраняем бронирование в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Условное инкрементирование счётчика занятости.
		// Запись не проходит, если слот уже заполнен.
		if err := uc.ledgerRepo.Reserve(txCtx, booking.Slot(), restaurant.TablesPerSlot); err != nil {
			if errors.Is(err, ledgerRepo.ErrSlotFull) {
				uc.logger.Warn("CreateBooking: slot %s %s is full for restaurant=%d",
					req.VisitDate.Format(domain.DateFormat), req.VisitTime, req.RestaurantID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to reserve slot: %v", err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 6.2. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s",
		result.ID, result.BookingReference)

	// 7. Публикуем событие после коммита. Ошибка публикации не откатывает
	// бронирование - только пишем в лог.
	if uc.publisher != nil {
		event := queue.BookingCreatedEvent{
			BookingReference: result.BookingReference,
			RestaurantID:     result.RestaurantID,
			UserID:           result.UserID,
			VisitDate:        result.VisitDate.Format(domain.DateFormat),
			VisitTime:        result.VisitTime.String(),
			PartySize:        result.PartySize,
			CustomerEmail:    result.CustomerEmail,
			CreatedAt:        result.CreatedAt,
		}
		if err := uc.publisher.BookingCreated(ctx, event); err != nil {
			uc.logger.Error("CreateBooking: failed to publish booking.created event: %v", err)
		}
	}

	// Конвертируем в response
	return &Response{
		ID:               result.ID,
		BookingReference: result.BookingReference,
		UserID:           result.UserID,
		RestaurantID:     result.RestaurantID,
		VisitDate:        result.VisitDate,
		VisitTime:        result.VisitTime,
		PartySize:        result.PartySize,
		Status:           string(result.Status),
		CustomerName:     result.CustomerName,
		CustomerEmail:    result.CustomerEmail,
		CustomerMobile:   result.CustomerMobile,
		SpecialRequests:  result.SpecialRequests,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}
