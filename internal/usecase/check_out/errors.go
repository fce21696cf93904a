package check_out

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_out: booking not found")

	// ErrAlreadySettled возвращается при повторной попытке расчёта
	ErrAlreadySettled = errors.New("check_out: booking is already settled")

	// ErrInvalidTransition возвращается, когда гость не заселён
	// и выселять с расчётом некого
	ErrInvalidTransition = errors.New("check_out: booking is not checked in")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_out: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_out: internal error")
)
