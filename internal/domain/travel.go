package domain

import "time"

// TravelBooking бронирование экскурсии
// Та же модель статусов и refund sub-state, что у Booking, но вместо
// диапазона дат - один день (TravelDate) и количество участников
type TravelBooking struct {
	ID               int64
	ExcursionID      int64
	CustomerID       int64
	TravelDate       time.Time
	ParticipantCount int
	Status           BookingStatus

	PaymentStatus PaymentStatus

	RefundRequested   bool
	RefundApproved    *bool
	RefundReason      *string
	RefundRequestedAt *time.Time

	// Цена, зафиксированная при создании (участники × цена за человека)
	BasePrice float64

	// Денормализованные данные экскурсии для истории
	ExcursionName string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает места на экскурсии
func (t *TravelBooking) IsActive() bool {
	return t.Status == StatusPending ||
		t.Status == StatusConfirmed ||
		t.Status == StatusCheckedIn
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (t *TravelBooking) CanBeCancelled() bool {
	return t.Status == StatusPending || t.Status == StatusConfirmed
}

// RefundDecisionPending возвращает true, если запрос на возврат подан,
// но решение по нему ещё не принято
func (t *TravelBooking) RefundDecisionPending() bool {
	return t.RefundRequested && t.RefundApproved == nil
}
