package models

// CancellationResult результат обработки запроса на отмену
// DaysUntil заполняется и при отказе по отсечке, чтобы клиент видел,
// сколько полных дней осталось до опорной даты
type CancellationResult struct {
	BookingID int64 `json:"bookingId"`
	Accepted  bool  `json:"accepted"`
	DaysUntil int   `json:"daysUntil"`
}

// RefundDecisionResult результат решения по запросу на возврат
type RefundDecisionResult struct {
	BookingID    int64  `json:"bookingId"`
	Approved     bool   `json:"approved"`
	Status       string `json:"status"`
	DisplayState string `json:"displayState"`
}
