package decide_refund

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
	msgNoPendingRefund    = "нет запроса на возврат, ожидающего решения"
)

// RefundDecisionRequest HTTP request model
type RefundDecisionRequest struct {
	Approved bool `json:"approved"`
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

// Handle POST /api/v1/bookings/{bookingId}/refund-decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/refund-decision - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingID)
		return
	}

	var req RefundDecisionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/refund-decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	result, err := h.service.DecideRoomRefund(r.Context(), bookingID, req.Approved)
	if err != nil {
		switch {
		case errors.Is(err, cancellation.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/refund-decision - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancellation.ErrNoPendingRefund):
			h.logger.Warn("POST /bookings/{id}/refund-decision - No pending refund: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgNoPendingRefund)

		case errors.Is(err, cancellation.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/refund-decision - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgNoPendingRefund)

		default:
			h.logger.Error("POST /bookings/{id}/refund-decision - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/refund-decision - Decision recorded: booking_id=%d, approved=%v",
		bookingID, req.Approved)
	handlers.RespondJSON(w, http.StatusOK, result)
}
