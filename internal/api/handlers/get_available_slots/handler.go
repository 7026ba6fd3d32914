package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	getSlots "github.com/m04kA/SMC-TableBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPartySize    = "некорректный размер компании"
	msgRestaurantNotFound  = "ресторан не найден"
	msgDateInPast          = "дата визита в прошлом"
	msgPartySizeTooLarge   = "размер компании превышает лимит ресторана"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/availability?date=YYYY-MM-DD&partySize=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantID, err := strconv.ParseInt(vars["restaurantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/availability - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Парсим дату из query
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// partySize опционален, по умолчанию минимальный
	partySize := domain.MinPartySize
	if raw := r.URL.Query().Get("partySize"); raw != "" {
		partySize, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /restaurants/{id}/availability - Invalid party size: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPartySize)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		RestaurantID: restaurantID,
		Date:         date,
		PartySize:    partySize,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{id}/availability - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, getSlots.ErrInvalidDate):
			h.logger.Warn("GET /restaurants/{id}/availability - Date in past: restaurant_id=%d", restaurantID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getSlots.ErrInvalidPartySize):
			h.logger.Warn("GET /restaurants/{id}/availability - Party size out of range: restaurant_id=%d, party_size=%d",
				restaurantID, partySize)
			handlers.RespondBadRequest(w, msgPartySizeTooLarge)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		default:
			h.logger.Error("GET /restaurants/{id}/availability - Failed to get slots: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/availability - %d slots returned: restaurant_id=%d, date=%s",
		len(result.Slots), restaurantID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
