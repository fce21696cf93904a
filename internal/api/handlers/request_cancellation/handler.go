package request_cancellation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/cancellation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgNotFound           = "бронирование не найдено"
	msgInvalidState       = "бронирование нельзя отменить из текущего статуса"
	msgAlreadyRequested   = "запрос на возврат уже подан"
	msgCutoffViolation    = "отмена недоступна: до заезда осталось меньше двух полных дней"
	msgInvalidInput       = "некорректные данные запроса"
)

// CancellationRequest HTTP request model
type CancellationRequest struct {
	Reason string `json:"reason"`
}

type Handler struct {
	service CancellationService
	logger  Logger
}

func NewHandler(service CancellationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancellation-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation-requests - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingID)
		return
	}

	var req CancellationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RequestRoomCancellation(r.Context(), bookingID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, cancellation.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancellation-requests - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancellation.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/cancellation-requests - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgInvalidState)

		case errors.Is(err, cancellation.ErrAlreadyRequested):
			h.logger.Warn("POST /bookings/{id}/cancellation-requests - Already requested: booking_id=%d", bookingID)
			handlers.RespondErrorWithDays(w, http.StatusConflict, handlers.CodeAlreadyRequested, msgAlreadyRequested, result.DaysUntil)

		case errors.Is(err, cancellation.ErrCutoffViolation):
			h.logger.Warn("POST /bookings/{id}/cancellation-requests - Cutoff violation: booking_id=%d, days_until=%d",
				bookingID, result.DaysUntil)
			handlers.RespondErrorWithDays(w, http.StatusConflict, handlers.CodeCutoffViolation, msgCutoffViolation, result.DaysUntil)

		case errors.Is(err, cancellation.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancellation-requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/cancellation-requests - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation-requests - Refund requested: booking_id=%d, days_until=%d",
		bookingID, result.DaysUntil)
	handlers.RespondJSON(w, http.StatusAccepted, result)
}
