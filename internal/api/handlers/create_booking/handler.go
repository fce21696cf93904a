package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	createBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateRange   = "некорректный диапазон дат, ожидается checkIn < checkOut в формате YYYY-MM-DD"
	msgOverlap            = "даты пересекаются с активным бронированием этого номера"
	msgRoomNotFound       = "номер не найден"
	msgCustomerNotFound   = "клиент не найден"
	msgRoomInMaintenance  = "номер закрыт на обслуживание"
	msgGuestCountExceeded = "количество гостей превышает вместимость номера"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrOverlap):
			h.logger.Warn("POST /bookings - Overlap: room_id=%d, customer_id=%d", req.RoomID, req.CustomerID)
			handlers.RespondConflict(w, handlers.CodeOverlapConflict, msgOverlap)

		case errors.Is(err, createBooking.ErrInvalidDateRange):
			h.logger.Warn("POST /bookings - Invalid date range: room_id=%d, customer_id=%d", req.RoomID, req.CustomerID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDateRange, msgInvalidDateRange)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrRoomInMaintenance):
			h.logger.Warn("POST /bookings - Room in maintenance: room_id=%d", req.RoomID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgRoomInMaintenance)

		case errors.Is(err, createBooking.ErrGuestCountExceeded):
			h.logger.Warn("POST /bookings - Guest count exceeded: room_id=%d, guests=%d", req.RoomID, req.GuestCount)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgGuestCountExceeded)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: room_id=%d, customer_id=%d, error=%v",
				req.RoomID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, room_id=%d, customer_id=%d",
		result.ID, req.RoomID, req.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
