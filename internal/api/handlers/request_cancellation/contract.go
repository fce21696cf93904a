package request_cancellation

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/service/cancellation/models"
)

type CancellationService interface {
	RequestRoomCancellation(ctx context.Context, bookingID int64, reason string) (*models.CancellationResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
