package create_travel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/travel"
	"github.com/m04kA/HMS-ReservationService/internal/service/travel/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgCustomerNotFound     = "клиент не найден"
	msgExcursionNotFound    = "экскурсия не найдена"
	msgExcursionUnavailable = "экскурсия недоступна для бронирования"
	msgCapacityExceeded     = "недостаточно свободных мест на выбранную дату"
	msgInvalidDate          = "некорректная дата экскурсии, ожидается YYYY-MM-DD не в прошлом"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	service TravelService
	logger  Logger
}

func NewHandler(service TravelService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/travel-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTravelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /travel-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, travel.ErrCapacityExceeded):
			h.logger.Warn("POST /travel-bookings - Capacity exceeded: excursion_id=%d, date=%s",
				req.ExcursionID, req.TravelDate)
			handlers.RespondConflict(w, handlers.CodeCapacityExceeded, msgCapacityExceeded)

		case errors.Is(err, travel.ErrCustomerNotFound):
			h.logger.Warn("POST /travel-bookings - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, travel.ErrExcursionNotFound):
			h.logger.Warn("POST /travel-bookings - Excursion not found: excursion_id=%d", req.ExcursionID)
			handlers.RespondNotFound(w, msgExcursionNotFound)

		case errors.Is(err, travel.ErrExcursionUnavailable):
			h.logger.Warn("POST /travel-bookings - Excursion unavailable: excursion_id=%d", req.ExcursionID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgExcursionUnavailable)

		case errors.Is(err, travel.ErrInvalidDate):
			h.logger.Warn("POST /travel-bookings - Invalid date: excursion_id=%d, date=%s", req.ExcursionID, req.TravelDate)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDateRange, msgInvalidDate)

		case errors.Is(err, travel.ErrInvalidInput):
			h.logger.Warn("POST /travel-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /travel-bookings - Failed to create travel booking: excursion_id=%d, customer_id=%d, error=%v",
				req.ExcursionID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /travel-bookings - Travel booking created: booking_id=%d, excursion_id=%d, customer_id=%d",
		result.ID, req.ExcursionID, req.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
