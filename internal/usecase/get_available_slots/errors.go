package get_available_slots

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден в каталоге
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("invalid visit date")

	// ErrInvalidPartySize возвращается, когда размер компании вне диапазона
	// 1..max_party_size ресторана
	ErrInvalidPartySize = errors.New("party size out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
