package decide_travel_refund

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/service/cancellation/models"
)

type CancellationService interface {
	DecideTravelRefund(ctx context.Context, bookingID int64, approved bool) (*models.RefundDecisionResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
