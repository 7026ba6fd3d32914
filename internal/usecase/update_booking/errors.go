package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому пользователю
	ErrForbidden = errors.New("booking belongs to another user")

	// ErrInvalidState возвращается, когда бронирование уже в терминальном статусе
	ErrInvalidState = errors.New("booking can no longer be updated")

	// ErrRestaurantNotFound возвращается, когда ресторан не найден в каталоге
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrRestaurantClosed возвращается, когда ресторан закрыт в выбранный день
	ErrRestaurantClosed = errors.New("restaurant is closed on this date")

	// ErrSlotNotAvailable возвращается, когда вместимость нового слота исчерпана
	ErrSlotNotAvailable = errors.New("slot is fully booked")

	// ErrInvalidSlot возвращается, когда новое время визита не совпадает
	// с сеткой слотов ресторана
	ErrInvalidSlot = errors.New("visit time is not a valid slot")

	// ErrInvalidDate возвращается для даты или времени визита в прошлом
	ErrInvalidDate = errors.New("invalid visit date")

	// ErrInvalidPartySize возвращается, когда размер компании вне диапазона
	// 1..max_party_size ресторана
	ErrInvalidPartySize = errors.New("party size out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
