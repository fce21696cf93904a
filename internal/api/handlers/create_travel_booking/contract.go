package create_travel_booking

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/service/travel/models"
)

type TravelService interface {
	Create(ctx context.Context, req *models.CreateTravelBookingRequest) (*models.TravelBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
