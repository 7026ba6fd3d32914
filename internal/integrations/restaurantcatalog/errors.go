package restaurantcatalog

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден в каталоге
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("restaurantcatalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("restaurantcatalog client: invalid response")
)
