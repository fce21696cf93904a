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

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// ExtraChargeResponse строка доп. начисления
type ExtraChargeResponse struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	RoomID       int64  `json:"roomId"`
	CustomerID   int64  `json:"customerId"`
	CheckIn      string `json:"checkIn"`  // "2025-06-01"
	CheckOut     string `json:"checkOut"` // "2025-06-03"
	GuestCount   int    `json:"guestCount"`
	Status       string `json:"status"`
	DisplayState string `json:"displayState"`

	PaymentStatus string `json:"paymentStatus"`

	RefundRequested bool    `json:"refundRequested"`
	RefundApproved  *bool   `json:"refundApproved,omitempty"`
	RefundReason    *string `json:"refundReason,omitempty"`

	BasePrice     float64               `json:"basePrice"`
	TotalPrice    *float64              `json:"totalPrice,omitempty"`
	ExtraCharges  []ExtraChargeResponse `json:"extraCharges,omitempty"`
	PaymentMethod *string               `json:"paymentMethod,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Отображаемое состояние вычисляется единственной функцией
// domain.BookingDisplayState - ручной сборки из refund-полей по месту нет
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		RoomID:          b.RoomID,
		CustomerID:      b.CustomerID,
		CheckIn:         b.CheckIn.Format(domain.DateFormat),
		CheckOut:        b.CheckOut.Format(domain.DateFormat),
		GuestCount:      b.GuestCount,
		Status:          string(b.Status),
		DisplayState:    string(domain.BookingDisplayState(b.Status, b.RefundRequested, b.RefundApproved)),
		PaymentStatus:   string(b.PaymentStatus),
		RefundRequested: b.RefundRequested,
		RefundApproved:  b.RefundApproved,
		RefundReason:    b.RefundReason,
		BasePrice:       b.BasePrice,
		TotalPrice:      b.TotalPrice,
		PaymentMethod:   b.PaymentMethod,

		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// WithCharges добавляет доп. начисления в ответ
func (r *BookingResponse) WithCharges(charges []domain.ExtraCharge) *BookingResponse {
	if len(charges) == 0 {
		return r
	}
	r.ExtraCharges = make([]ExtraChargeResponse, len(charges))
	for i, c := range charges {
		r.ExtraCharges[i] = ExtraChargeResponse{Description: c.Description, Amount: c.Amount}
	}
	return r
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus канонизирует строку статуса с JSON-границы
// Регистронезависимая нормализация выполняется только здесь;
// внутри сервиса статусы сравниваются строго
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !domain.ValidBookingStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentStatus канонизирует строку статуса оплаты с JSON-границы
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(strings.ToLower(strings.TrimSpace(status)))
	switch s {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentCompleted, domain.PaymentFailed:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
