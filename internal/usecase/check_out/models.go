package check_out

import "time"

// ChargeInput дополнительное начисление из запроса
type ChargeInput struct {
	Description string  // Назначение (мини-бар, ущерб, скидка)
	Amount      float64 // Сумма, может быть отрицательной
}

// Request модель запроса на выселение с расчётом
type Request struct {
	BookingID     int64         // ID бронирования
	ExtraCharges  []ChargeInput // Доп. начисления, порядок сохраняется
	PaymentMethod string        // Способ оплаты (card, cash)
}

// InvoiceLineResponse строка счёта
type InvoiceLineResponse struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Response структурированный счёт по результатам расчёта
type Response struct {
	InvoiceNumber string                `json:"invoiceNumber"`
	BookingID     int64                 `json:"bookingId"`
	CustomerID    int64                 `json:"customerId"`
	RoomID        int64                 `json:"roomId"`
	CheckIn       string                `json:"checkIn"`
	CheckOut      string                `json:"checkOut"`
	Nights        int                   `json:"nights"`
	BasePrice     float64               `json:"basePrice"`
	LineItems     []InvoiceLineResponse `json:"lineItems,omitempty"`
	Total         float64               `json:"total"`
	Clamped       bool                  `json:"clamped"`
	PaymentMethod string                `json:"paymentMethod"`
	IssuedAt      time.Time             `json:"issuedAt"`
}
