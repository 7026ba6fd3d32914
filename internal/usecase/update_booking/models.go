package update_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Request модель запроса на изменение бронирования.
// Поля-указатели опциональны: nil означает "оставить как есть".
type Request struct {
	BookingReference string            // Публичный код бронирования
	UserID           int64             // ID пользователя, выполняющего изменение
	VisitDate        *time.Time        // Новая дата визита (опционально)
	VisitTime        *types.TimeString // Новое время визита (опционально)
	PartySize        *int              // Новый размер компании (опционально)
	SpecialRequests  *string           // Новые пожелания (опционально)
}

// Response модель ответа с измененным бронированием
type Response struct {
	ID               int64            // ID бронирования
	BookingReference string           // Публичный код бронирования
	UserID           int64            // ID пользователя
	RestaurantID     int64            // ID ресторана
	VisitDate        time.Time        // Дата визита
	VisitTime        types.TimeString // Время начала слота
	PartySize        int              // Размер компании
	Status           string           // Статус бронирования

	CustomerName    string  // Имя гостя
	CustomerEmail   string  // Email гостя
	CustomerMobile  string  // Телефон гостя
	SpecialRequests *string // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
