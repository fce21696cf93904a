package domain

import "time"

// ExtraCharge дополнительное начисление при выезде
// Отрицательная сумма допустима (скидка/компенсация)
type ExtraCharge struct {
	Description string
	Amount      float64
}

// InvoiceLine строка счёта
type InvoiceLine struct {
	Description string
	Amount      float64
}

// Invoice структурированный счёт, формируемый при выезде
// Рендеринг в конкретный формат документа - вне зоны ответственности сервиса
type Invoice struct {
	Number        string
	BookingID     int64
	CustomerID    int64
	RoomID        int64
	CheckIn       time.Time
	CheckOut      time.Time
	Nights        int
	BasePrice     float64
	LineItems     []InvoiceLine
	Total         float64
	Clamped       bool // итог ушёл бы в минус и был ограничен нулём
	PaymentMethod string
	IssuedAt      time.Time
}

// Settle вычисляет итог расчёта: basePrice + сумма доп. начислений
// Отрицательный итог ограничивается нулём; второй результат сообщает,
// что ограничение сработало и случай надо отразить в аудите
func Settle(basePrice float64, charges []ExtraCharge) (float64, bool) {
	total := basePrice
	for _, c := range charges {
		total += c.Amount
	}
	if total < 0 {
		return 0, true
	}
	return total, false
}
