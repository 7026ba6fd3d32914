package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64            // ID пользователя
	RestaurantID    int64            // ID ресторана
	VisitDate       time.Time        // Дата визита (без времени)
	VisitTime       types.TimeString // Время начала слота (например, "19:30")
	PartySize       int              // Размер компании
	CustomerName    string           // Имя гостя
	CustomerEmail   string           // Email гостя
	CustomerMobile  string           // Телефон гостя (E.164)
	SpecialRequests *string          // Пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64            // ID созданного бронирования
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
