package check_out

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	checkOut "github.com/m04kA/HMS-ReservationService/internal/usecase/check_out"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgNotFound           = "бронирование не найдено"
	msgAlreadySettled     = "расчёт по бронированию уже произведён"
	msgInvalidTransition  = "выселение возможно только после заселения"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/check-out
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-out - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidBookingID)
		return
	}

	var req CheckOutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/check-out - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, checkOut.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-out - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkOut.ErrAlreadySettled):
			h.logger.Warn("POST /bookings/{id}/check-out - Already settled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeAlreadySettled, msgAlreadySettled)

		case errors.Is(err, checkOut.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/check-out - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		case errors.Is(err, checkOut.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/check-out - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/check-out - Failed to check out: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-out - Settled successfully: booking_id=%d, invoice=%s, total=%.2f",
		bookingID, result.InvoiceNumber, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
