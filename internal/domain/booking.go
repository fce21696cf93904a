package domain

import "time"

// BookingStatus статус бронирования номера
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus статус оплаты - независимая от статуса бронирования ось
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Booking бронирование номера
// Заселение занимает полуинтервал [CheckIn, CheckOut): день выезда
// не занят, поэтому выезд и новый заезд в один день не конфликтуют
type Booking struct {
	ID         int64
	RoomID     int64
	CustomerID int64
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
	Status     BookingStatus

	PaymentStatus PaymentStatus

	// Refund sub-state: RefundRequested выставляется один раз и не
	// снимается; RefundApproved = nil, пока решение не принято
	RefundRequested   bool
	RefundApproved    *bool
	RefundReason      *string
	RefundRequestedAt *time.Time

	// Цена за проживание, зафиксированная при создании (ночи × тариф)
	BasePrice float64

	// Итог расчёта при выезде (BasePrice + сумма доп. начислений)
	TotalPrice    *float64
	PaymentMethod *string
	SettledAt     *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает номер
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusCheckedIn
}

// IsTerminal возвращает true, если из статуса нет переходов
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCheckedOut || b.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если бронирование можно отменить
// (и, соответственно, запросить возврат средств)
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanCheckIn возвращает true, если гостя можно заселить
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusConfirmed
}

// CanCheckOut возвращает true, если гостя можно выселить с расчётом
func (b *Booking) CanCheckOut() bool {
	return b.Status == StatusCheckedIn
}

// IsSettled возвращает true, если расчёт при выезде уже произведён
func (b *Booking) IsSettled() bool {
	return b.Status == StatusCheckedOut
}

// Nights возвращает количество ночей проживания
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Overlaps проверяет пересечение с кандидатным полуинтервалом [checkIn, checkOut)
// Пересечение есть iff checkIn < b.CheckOut && b.CheckIn < checkOut;
// граничный случай (выезд в день заезда другого) пересечением не считается
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOut) && b.CheckIn.Before(checkOut)
}

// RefundDecisionPending возвращает true, если запрос на возврат подан,
// но решение по нему ещё не принято
func (b *Booking) RefundDecisionPending() bool {
	return b.RefundRequested && b.RefundApproved == nil
}

// DisplayState производное отображаемое состояние бронирования
// Не хранится: вычисляется из статуса и refund sub-state в одном месте
type DisplayState string

const (
	DisplayCancellationPending DisplayState = "cancellation_pending"
	DisplayRefundDeclined      DisplayState = "refund_declined"
)

// BookingDisplayState вычисляет отображаемое состояние бронирования
// Пока запрос на возврат не рассмотрен, бронирование показывается как
// "ожидает отмены", хотя хранимый статус остаётся pending/confirmed
func BookingDisplayState(status BookingStatus, refundRequested bool, refundApproved *bool) DisplayState {
	if refundRequested && refundApproved == nil {
		return DisplayCancellationPending
	}
	if refundRequested && refundApproved != nil && !*refundApproved && status != StatusCancelled {
		return DisplayRefundDeclined
	}
	return DisplayState(status)
}
