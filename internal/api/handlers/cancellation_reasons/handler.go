package cancellation_reasons

import (
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TableBookingService/internal/service/bookings/models"
)

// ReasonsResponse HTTP модель справочника причин отмены
type ReasonsResponse struct {
	Reasons []models.CancellationReasonResponse `json:"reasons"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cancellation-reasons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reasons := h.service.CancellationReasons()

	h.logger.Info("GET /cancellation-reasons - %d reasons returned", len(reasons))
	handlers.RespondJSON(w, http.StatusOK, ReasonsResponse{Reasons: reasons})
}
