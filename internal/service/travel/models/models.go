package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CreateTravelBookingRequest запрос на бронирование экскурсии
type CreateTravelBookingRequest struct {
	ExcursionID      int64  `json:"excursionId"`
	CustomerID       int64  `json:"customerId"`
	TravelDate       string `json:"travelDate"` // "2025-06-01"
	ParticipantCount int    `json:"participantCount"`
}

// GetCustomerTravelBookingsRequest запрос на получение бронирований клиента
type GetCustomerTravelBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// TravelBookingResponse ответ с данными бронирования экскурсии
type TravelBookingResponse struct {
	ID               int64  `json:"id"`
	ExcursionID      int64  `json:"excursionId"`
	ExcursionName    string `json:"excursionName"`
	CustomerID       int64  `json:"customerId"`
	TravelDate       string `json:"travelDate"`
	ParticipantCount int    `json:"participantCount"`
	Status           string `json:"status"`
	DisplayState     string `json:"displayState"`

	PaymentStatus string `json:"paymentStatus"`

	RefundRequested bool    `json:"refundRequested"`
	RefundApproved  *bool   `json:"refundApproved,omitempty"`
	RefundReason    *string `json:"refundReason,omitempty"`

	BasePrice float64 `json:"basePrice"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TravelBookingListResponse ответ со списком бронирований экскурсий
type TravelBookingListResponse struct {
	Bookings []TravelBookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainTravelBooking конвертирует domain модель в DTO
func FromDomainTravelBooking(t *domain.TravelBooking) *TravelBookingResponse {
	if t == nil {
		return nil
	}

	resp := &TravelBookingResponse{
		ID:               t.ID,
		ExcursionID:      t.ExcursionID,
		ExcursionName:    t.ExcursionName,
		CustomerID:       t.CustomerID,
		TravelDate:       t.TravelDate.Format(domain.DateFormat),
		ParticipantCount: t.ParticipantCount,
		Status:           string(t.Status),
		DisplayState:     string(domain.BookingDisplayState(t.Status, t.RefundRequested, t.RefundApproved)),
		PaymentStatus:    string(t.PaymentStatus),
		RefundRequested:  t.RefundRequested,
		RefundApproved:   t.RefundApproved,
		RefundReason:     t.RefundReason,
		BasePrice:        t.BasePrice,

		CancellationReason: t.CancellationReason,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}

	if t.CancelledAt != nil {
		cancelledStr := t.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainTravelBookingList конвертирует список domain моделей в DTO
func FromDomainTravelBookingList(bookings []*domain.TravelBooking) *TravelBookingListResponse {
	resp := &TravelBookingListResponse{
		Bookings: make([]TravelBookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainTravelBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus канонизирует строку статуса с JSON-границы
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !domain.ValidBookingStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
