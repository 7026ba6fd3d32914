package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TableBookingService/internal/queue"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	ledgerRepo   LedgerRepository
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledgerRepo LedgerRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledgerRepo:   ledgerRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Перевод в статус cancelled и освобождение места в слоте происходят
// в одной транзакции, место освобождается ровно один раз: повторная
// отмена отбивается проверкой статуса под блокировкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: reference=%s, user=%d, reason=%d",
		req.BookingReference, req.UserID, req.CancellationReasonID)

	// 1. Валидация входных данных
	if req.BookingReference == "" {
		return nil, fmt.Errorf("%w: bookingReference is required", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// 2. Причина отмены должна быть из справочника
	reason, ok := domain.CancellationReasonByID(req.CancellationReasonID)
	if !ok {
		uc.logger.Warn("CancelBooking: unknown cancellation reason id=%d", req.CancellationReasonID)
		return nil, ErrInvalidReason
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Освобождаем место и отменяем бронирование в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем бронирование под блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByReference(txCtx, req.BookingReference)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking %s not found", req.BookingReference)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking %s: %v", req.BookingReference, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: booking %s belongs to user=%d, requested by user=%d",
				req.BookingReference, booking.UserID, req.UserID)
			return ErrForbidden
		}

		// 3.2. Повторная отмена и отмена завершенных визитов запрещены
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking %s has status %s", req.BookingReference, booking.Status)
			return ErrInvalidState
		}

		// 3.3. Освобождаем место в слоте
		if err := uc.ledgerRepo.Release(txCtx, booking.Slot()); err != nil {
			uc.logger.Error("CancelBooking: failed to release slot: %v", err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		// 3.4. Помечаем бронирование отмененным
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.CancellationReasonID); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking %s: %v", req.BookingReference, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	cancelledAt := uc.timeProvider.Now()

	uc.logger.Info("CancelBooking: successfully cancelled booking %s", req.BookingReference)

	// 4. Публикуем событие после коммита. Ошибка публикации не откатывает
	// отмену - только пишем в лог.
	if uc.publisher != nil {
		event := queue.BookingCancelledEvent{
			BookingReference:   result.BookingReference,
			RestaurantID:       result.RestaurantID,
			UserID:             result.UserID,
			VisitDate:          result.VisitDate.Format(domain.DateFormat),
			VisitTime:          result.VisitTime.String(),
			CancellationReason: reason.Reason,
			CancelledAt:        cancelledAt,
		}
		if err := uc.publisher.BookingCancelled(ctx, event); err != nil {
			uc.logger.Error("CancelBooking: failed to publish booking.cancelled event: %v", err)
		}
	}

	// Конвертируем в response
	return &Response{
		ID:                   result.ID,
		BookingReference:     result.BookingReference,
		UserID:               result.UserID,
		RestaurantID:         result.RestaurantID,
		VisitDate:            result.VisitDate,
		VisitTime:            result.VisitTime,
		PartySize:            result.PartySize,
		Status:               string(domain.StatusCancelled),
		CancellationReasonID: reason.ID,
		CancellationReason:   reason.Reason,
		CancelledAt:          &cancelledAt,
	}, nil
}
