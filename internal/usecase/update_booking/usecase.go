package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	ledgerRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/ledger"
	catalogClient "github.com/m04kA/SMC-TableBookingService/internal/integrations/restaurantcatalog"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	ledgerRepo   LedgerRepository
	catalog      RestaurantCatalogClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledgerRepo LedgerRepository,
	catalog RestaurantCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledgerRepo:   ledgerRepo,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования.
// Перенос на другой слот атомарен: новое место резервируется до
// освобождения старого, в одной сериализуемой транзакции со строкой
// бронирования под блокировкой. При нехватке мест в новом слоте
// бронирование остается на старом без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: reference=%s, user=%d", req.BookingReference, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем бронирование вне транзакции, чтобы узнать ресторан
	// и отсечь заведомо невалидные запросы до захвата блокировок
	booking, err := uc.bookingRepo.GetByReference(ctx, req.BookingReference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking %s not found", req.BookingReference)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking %s: %v", req.BookingReference, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.UserID != req.UserID {
		uc.logger.Warn("UpdateBooking: booking %s belongs to user=%d, requested by user=%d",
			req.BookingReference, booking.UserID, req.UserID)
		return nil, ErrForbidden
	}

	if !booking.CanBeUpdated() {
		uc.logger.Warn("UpdateBooking: booking %s has status %s", req.BookingReference, booking.Status)
		return nil, ErrInvalidState
	}

	// 3. Получаем ресторан из каталога
	restaurant, err := uc.catalog.GetRestaurant(ctx, booking.RestaurantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrRestaurantNotFound) {
			uc.logger.Warn("UpdateBooking: restaurant id=%d not found", booking.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get restaurant id=%d: %v", booking.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// 4. Собираем целевое состояние визита
	targetDate := booking.VisitDate
	if req.VisitDate != nil {
		targetDate = *req.VisitDate
	}
	targetTime := booking.VisitTime
	if req.VisitTime != nil {
		targetTime = *req.VisitTime
	}
	targetPartySize := booking.PartySize
	if req.PartySize != nil {
		targetPartySize = *req.PartySize
	}
	targetRequests := booking.SpecialRequests
	if req.SpecialRequests != nil {
		targetRequests = req.SpecialRequests
	}

	// 5. Размер компании в пределах лимита ресторана
	if targetPartySize > restaurant.MaxPartySize {
		uc.logger.Warn("UpdateBooking: party size %d exceeds restaurant max %d",
			targetPartySize, restaurant.MaxPartySize)
		return nil, fmt.Errorf("%w: restaurant accepts at most %d guests", ErrInvalidPartySize, restaurant.MaxPartySize)
	}

	// 6. Целевой слот валиден только если слот меняется
	now := uc.timeProvider.Now().In(restaurant.Location())
	slotChanged := !isSameDay(targetDate, booking.VisitDate) || !targetTime.Equal(booking.VisitTime)
	if slotChanged {
		if err := validateVisitSlot(targetDate, targetTime, restaurant, now); err != nil {
			uc.logger.Warn("UpdateBooking: slot validation failed: %v", err)
			return nil, err
		}
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Переносим слот и обновляем строку в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Перечитываем бронирование под блокировкой (FOR UPDATE)
		locked, err := uc.bookingRepo.GetByReference(txCtx, req.BookingReference)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to lock booking %s: %v", req.BookingReference, err)
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		// 7.2. Статус мог измениться между чтениями
		if !locked.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking %s moved to status %s", req.BookingReference, locked.Status)
			return ErrInvalidState
		}

		// 7.3. Перенос на другой слот: сначала резервируем новое место,
		// потом освобождаем старое. Изменения без смены слота
		// (party_size, пожелания) леджер не трогают.
		if slotChanged {
			oldKey := locked.Slot()
			newKey := domain.SlotKey{
				RestaurantID: locked.RestaurantID,
				Date:         targetDate,
				Time:         targetTime,
			}
			if err := uc.ledgerRepo.Move(txCtx, oldKey, newKey, restaurant.TablesPerSlot); err != nil {
				if errors.Is(err, ledgerRepo.ErrSlotFull) {
					uc.logger.Warn("UpdateBooking: target slot %s %s is full",
						targetDate.Format(domain.DateFormat), targetTime)
					return ErrSlotNotAvailable
				}
				uc.logger.Error("UpdateBooking: failed to move slot: %v", err)
				return fmt.Errorf("%w: failed to move slot: %v", ErrInternal, err)
			}
		}

		// 7.4. Обновляем строку бронирования
		upd := *locked
		upd.VisitDate = targetDate
		upd.VisitTime = targetTime
		upd.PartySize = targetPartySize
		upd.SpecialRequests = targetRequests

		if err := uc.bookingRepo.UpdateVisit(txCtx, locked.ID, upd); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking %s: %v", req.BookingReference, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = &upd
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking %s", req.BookingReference)

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
