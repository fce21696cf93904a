package list_available_rooms

import (
	"context"

	listRooms "github.com/m04kA/HMS-ReservationService/internal/usecase/list_available_rooms"
)

type ListAvailableRoomsUseCase interface {
	Execute(ctx context.Context, req *listRooms.Request) (*listRooms.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
