package list_available_rooms

import "errors"

var (
	// ErrInvalidDateRange возвращается, когда задана только одна дата
	// или checkOut не позже checkIn
	ErrInvalidDateRange = errors.New("list_available_rooms: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_available_rooms: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_available_rooms: internal error")
)
