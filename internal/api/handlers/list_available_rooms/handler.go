package list_available_rooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	listRooms "github.com/m04kA/HMS-ReservationService/internal/usecase/list_available_rooms"
)

const (
	msgInvalidDateRange = "некорректный диапазон дат: checkIn и checkOut задаются вместе, checkIn < checkOut"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase ListAvailableRoomsUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailableRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/available
// Query: checkIn, checkOut, guests, roomType - все опциональны,
// но даты только парой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &listRooms.Request{}

	query := r.URL.Query()
	if v := query.Get("checkIn"); v != "" {
		req.CheckIn = &v
	}
	if v := query.Get("checkOut"); v != "" {
		req.CheckOut = &v
	}
	if v := query.Get("roomType"); v != "" {
		req.RoomType = &v
	}
	if v := query.Get("guests"); v != "" {
		guests, err := strconv.Atoi(v)
		if err != nil {
			h.logger.Warn("GET /rooms/available - Invalid guests parameter: %s", v)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)
			return
		}
		req.Guests = &guests
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listRooms.ErrInvalidDateRange):
			h.logger.Warn("GET /rooms/available - Invalid date range: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDateRange, msgInvalidDateRange)

		case errors.Is(err, listRooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("GET /rooms/available - Failed to list rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/available - Found %d rooms", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}
