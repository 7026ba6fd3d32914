package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TableBookingService/internal/service/bookings/models"
)

// Пагинация истории бронирований
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Service сервис для чтения бронирований и смены статусов визита
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByReference получает бронирование по публичному коду
// Пользователь может видеть только собственные бронирования
func (s *Service) GetByReference(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking %s for user=%d", reference, userID)

	booking, err := s.fetchOwned(ctx, reference, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByReference: successfully fetched booking %s", reference)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// с фильтрацией по статусу и периоду дат и пагинацией
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Нормализуем пагинацию
	if req.Limit <= 0 {
		req.Limit = defaultHistoryLimit
	}
	if req.Limit > maxHistoryLimit {
		req.Limit = maxHistoryLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	total, err := s.bookingRepo.CountByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: count error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - count error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d of %d bookings for user=%d",
		len(bookings), total, req.UserID)
	return models.FromDomainBookingList(bookings, total, req.Limit, req.Offset), nil
}

// MarkCompleted помечает подтвержденное бронирование завершенным.
// Счётчики занятости не меняются: слот уже в прошлом.
func (s *Service) MarkCompleted(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, reference, userID, domain.StatusCompleted)
}

// MarkNoShow помечает подтвержденное бронирование неявкой
func (s *Service) MarkNoShow(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, reference, userID, domain.StatusNoShow)
}

// CancellationReasons возвращает справочник причин отмены
func (s *Service) CancellationReasons() []models.CancellationReasonResponse {
	return models.FromDomainCancellationReasons(domain.CancellationReasons)
}

// transition переводит бронирование в терминальный статус визита.
// Переход разрешен только из confirmed, гонка статусов отбивается
// условием в UPDATE.
func (s *Service) transition(ctx context.Context, reference string, userID int64, to domain.BookingStatus) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking %s -> %s, user=%d", reference, to, userID)

	booking, err := s.fetchOwned(ctx, reference, userID)
	if err != nil {
		return nil, err
	}

	err = s.bookingRepo.UpdateStatus(ctx, booking.ID, []domain.BookingStatus{domain.StatusConfirmed}, to)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("UpdateStatus: booking %s is not confirmed, current status %s", reference, booking.Status)
			return nil, ErrInvalidStatus
		}
		s.logger.Error("UpdateStatus: repository error for booking %s: %v", reference, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = to

	s.logger.Info("UpdateStatus: booking %s is now %s", reference, to)
	return models.FromDomainBooking(booking), nil
}

// fetchOwned получает бронирование и проверяет владельца
func (s *Service) fetchOwned(ctx context.Context, reference string, userID int64) (*domain.Booking, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: bookingReference is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("fetchOwned: booking %s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("fetchOwned: repository error for booking %s: %v", reference, err)
		return nil, fmt.Errorf("%w: fetchOwned - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("fetchOwned: access denied for user=%d to booking %s", userID, reference)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
