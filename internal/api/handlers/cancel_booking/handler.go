package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-TableBookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgAlreadyTerminal    = "бронирование уже отменено или завершено"
	msgInvalidReason      = "неизвестная причина отмены"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingReference}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["bookingReference"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{ref}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{ref}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingReference:     reference,
		UserID:               userID,
		CancellationReasonID: req.CancellationReasonID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{ref}/cancel - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrForbidden):
			h.logger.Warn("POST /bookings/{ref}/cancel - Access denied: reference=%s, user_id=%d", reference, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrInvalidState):
			h.logger.Warn("POST /bookings/{ref}/cancel - Invalid state: reference=%s", reference)
			handlers.RespondConflict(w, msgAlreadyTerminal)

		case errors.Is(err, cancelBooking.ErrInvalidReason):
			h.logger.Warn("POST /bookings/{ref}/cancel - Unknown reason: reference=%s, reason_id=%d",
				reference, req.CancellationReasonID)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{ref}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{ref}/cancel - Failed to cancel booking: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{ref}/cancel - Booking cancelled successfully: reference=%s, user_id=%d",
		reference, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
