package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrRoomInMaintenance возвращается, когда номер закрыт на обслуживание
	ErrRoomInMaintenance = errors.New("create_booking: room is under maintenance")

	// ErrInvalidDateRange возвращается, когда диапазон дат некорректен
	// (checkOut <= checkIn, нераспарсиваемая дата, дата в прошлом)
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrGuestCountExceeded возвращается, когда гостей больше вместимости номера
	ErrGuestCountExceeded = errors.New("create_booking: guest count exceeds room capacity")

	// ErrOverlap возвращается, когда даты пересекаются с активным
	// бронированием этого номера
	ErrOverlap = errors.New("create_booking: dates overlap an active booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
