package cancellation

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidState возвращается, когда бронирование нельзя отменить
	// из текущего статуса (заселён, выехал, уже отменён)
	ErrInvalidState = errors.New("booking cannot be cancelled in its current status")

	// ErrAlreadyRequested возвращается при повторном запросе на возврат;
	// первый запрос при этом не изменяется
	ErrAlreadyRequested = errors.New("refund already requested")

	// ErrCutoffViolation возвращается, когда до опорной даты остаётся
	// меньше полных дней, чем требует политика отмены
	ErrCutoffViolation = errors.New("cancellation window has closed")

	// ErrNoPendingRefund возвращается, когда нет запроса на возврат,
	// ожидающего решения
	ErrNoPendingRefund = errors.New("no pending refund request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
