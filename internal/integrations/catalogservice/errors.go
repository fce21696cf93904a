package catalogservice

import "errors"

var (
	// ErrExcursionNotFound возвращается, когда экскурсия не найдена
	ErrExcursionNotFound = errors.New("catalogservice client: excursion not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
