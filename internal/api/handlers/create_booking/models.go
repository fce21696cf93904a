package create_booking

import (
	"time"

	createBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID     int64  `json:"roomId"`
	CustomerID int64  `json:"customerId"`
	CheckIn    string `json:"checkIn"`  // "2025-06-01"
	CheckOut   string `json:"checkOut"` // "2025-06-03"
	GuestCount int    `json:"numberOfGuests"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	RoomID        int64   `json:"roomId"`
	CustomerID    int64   `json:"customerId"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
	GuestCount    int     `json:"guestCount"`
	Nights        int     `json:"nights"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	BasePrice     float64 `json:"basePrice"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		RoomID:     r.RoomID,
		CustomerID: r.CustomerID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		GuestCount: r.GuestCount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		RoomID:        resp.RoomID,
		CustomerID:    resp.CustomerID,
		CheckIn:       resp.CheckIn,
		CheckOut:      resp.CheckOut,
		GuestCount:    resp.GuestCount,
		Nights:        resp.Nights,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		BasePrice:     resp.BasePrice,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
