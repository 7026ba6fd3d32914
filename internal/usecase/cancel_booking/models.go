package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingReference     string // Публичный код бронирования
	UserID               int64  // ID пользователя, выполняющего отмену
	CancellationReasonID int64  // ID причины отмены из справочника
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID               int64            // ID бронирования
	BookingReference string           // Публичный код бронирования
	UserID           int64            // ID пользователя
	RestaurantID     int64            // ID ресторана
	VisitDate        time.Time        // Дата визита
	VisitTime        types.TimeString // Время начала слота
	PartySize        int              // Размер компании
	Status           string           // Статус бронирования (cancelled)

	CancellationReasonID int64      // ID причины отмены
	CancellationReason   string     // Текст причины отмены
	CancelledAt          *time.Time // Время отмены
}
