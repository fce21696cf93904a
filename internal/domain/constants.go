package domain

// Форматы дат
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancellationCutoffDays минимальное количество полных календарных дней
// до даты заезда (или даты экскурсии), при котором запрос на отмену
// ещё принимается
const CancellationCutoffDays = 2

// Бизнес-ограничения
const (
	MinGuestCount               = 1
	MaxCancellationReasonLength = 500
	MaxChargeDescriptionLength  = 200
)

// ActiveStatuses статусы бронирований, занимающих номер
// Используются при проверке доступности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCheckedOut,
	StatusCancelled,
}
