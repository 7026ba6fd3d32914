package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrForbidden возвращается, когда бронирование принадлежит другому пользователю
	ErrForbidden = errors.New("booking belongs to another user")

	// ErrInvalidState возвращается при попытке отменить бронирование
	// в терминальном статусе (включая повторную отмену)
	ErrInvalidState = errors.New("booking can no longer be cancelled")

	// ErrInvalidReason возвращается для неизвестного ID причины отмены
	ErrInvalidReason = errors.New("unknown cancellation reason")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
