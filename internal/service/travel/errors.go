package travel

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование экскурсии не найдено
	ErrBookingNotFound = errors.New("travel booking not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrExcursionNotFound возвращается, когда экскурсия не найдена в каталоге
	ErrExcursionNotFound = errors.New("excursion not found")

	// ErrExcursionUnavailable возвращается, когда экскурсия снята с продажи
	ErrExcursionUnavailable = errors.New("excursion is not available for booking")

	// ErrCapacityExceeded возвращается, когда свободных мест на дату
	// меньше запрошенного количества участников
	ErrCapacityExceeded = errors.New("excursion capacity exceeded for the requested date")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате экскурсии
	ErrInvalidDate = errors.New("invalid travel date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
