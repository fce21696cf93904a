package domain

// bookingTransitions допустимые переходы статусов бронирования
// Основная ветка строго вперед: pending → confirmed → checked_in → checked_out;
// cancelled достижим только из pending и confirmed
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {},
	StatusCancelled:  {},
}

// CanTransition проверяет допустимость перехода статуса
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidBookingStatus проверяет, что строка является известным статусом
func ValidBookingStatus(s BookingStatus) bool {
	_, ok := bookingTransitions[s]
	return ok
}
