package get_customer_travel_bookings

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/service/travel/models"
)

type TravelService interface {
	GetCustomerBookings(ctx context.Context, req *models.GetCustomerTravelBookingsRequest) (*models.TravelBookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
