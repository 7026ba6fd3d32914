package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	RestaurantID int64     // ID ресторана
	Date         time.Time // Дата визита (без времени)
	PartySize    int       // Размер компании
}

// Response модель ответа со списком слотов
type Response struct {
	RestaurantID int64     // ID ресторана
	Date         time.Time // Дата, на которую запрашивались слоты
	PartySize    int       // Размер компании из запроса
	Slots        []Slot    // Слоты по возрастанию времени
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString // Время начала слота, например "12:30"
	Capacity       int              // Общее количество одновременных бронирований
	BookedCount    int              // Активные бронирования на это время
	AvailableSpots int              // Свободные места
	Available      bool             // Есть ли свободная вместимость
}
