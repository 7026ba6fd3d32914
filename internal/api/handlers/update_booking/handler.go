package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/api/middleware"
	updateBooking "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidState       = "бронирование нельзя изменить в текущем статусе"
	msgRestaurantClosed   = "ресторан закрыт в выбранную дату"
	msgSlotNotAvailable   = "выбранный временной слот полностью занят"
	msgInvalidSlot        = "время визита не совпадает с сеткой слотов"
	msgInvalidDate        = "некорректная дата визита"
	msgInvalidPartySize   = "размер компании вне допустимого диапазона"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingReference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["bookingReference"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{ref} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{ref} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reference, userID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{ref} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{ref} - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{ref} - Access denied: reference=%s, user_id=%d", reference, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrInvalidState):
			h.logger.Warn("PATCH /bookings/{ref} - Invalid state: reference=%s", reference)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, updateBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{ref} - Slot not available: reference=%s", reference)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateBooking.ErrRestaurantClosed):
			h.logger.Warn("PATCH /bookings/{ref} - Restaurant closed: reference=%s", reference)
			handlers.RespondBadRequest(w, msgRestaurantClosed)

		case errors.Is(err, updateBooking.ErrInvalidSlot):
			h.logger.Warn("PATCH /bookings/{ref} - Invalid slot: reference=%s", reference)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, updateBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{ref} - Invalid date: reference=%s", reference)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateBooking.ErrInvalidPartySize):
			h.logger.Warn("PATCH /bookings/{ref} - Invalid party size: reference=%s", reference)
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{ref} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{ref} - Failed to update booking: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{ref} - Booking updated successfully: reference=%s, user_id=%d", reference, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
