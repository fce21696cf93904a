package list_available_rooms

import (
	"context"
	"fmt"
)

// UseCase use case подбора доступных номеров
// Без дат - каталожный режим (только статические фильтры), с датами -
// дополнительно исключаются номера с пересекающимися активными бронями
type UseCase struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(roomRepo RoomRepository, logger Logger) *UseCase {
	return &UseCase{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Execute выполняет подбор номеров по фильтру
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	filter, err := buildFilter(req)
	if err != nil {
		uc.logger.Warn("ListAvailableRooms: validation failed: %v", err)
		return nil, err
	}

	if filter.AvailabilityRequested() {
		uc.logger.Info("ListAvailableRooms: availability mode, checkIn=%s, checkOut=%s",
			*req.CheckIn, *req.CheckOut)
	} else {
		uc.logger.Info("ListAvailableRooms: catalog mode")
	}

	rooms, err := uc.roomRepo.ListAvailable(ctx, filter)
	if err != nil {
		uc.logger.Error("ListAvailableRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	resp := &Response{Rooms: make([]RoomResponse, 0, len(rooms))}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, RoomResponse{
			ID:            room.ID,
			Number:        room.Number,
			RoomType:      string(room.RoomType),
			Capacity:      room.Capacity,
			PricePerNight: room.PricePerNight,
			Status:        string(room.Status),
		})
	}

	uc.logger.Info("ListAvailableRooms: found %d rooms", len(resp.Rooms))
	return resp, nil
}
