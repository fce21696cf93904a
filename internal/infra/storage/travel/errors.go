package travel

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование экскурсии не найдено
	ErrBookingNotFound = errors.New("travel.repository: travel booking not found")

	// ErrStatusConflict возвращается, когда guarded UPDATE не нашёл строку
	// в ожидаемом исходном статусе
	ErrStatusConflict = errors.New("travel.repository: travel booking is not in the expected status")

	// ErrRefundAlreadyRequested возвращается при повторной попытке
	// выставить refund_requested
	ErrRefundAlreadyRequested = errors.New("travel.repository: refund already requested")

	// ErrNoPendingRefund возвращается, когда нет запроса на возврат,
	// ожидающего решения
	ErrNoPendingRefund = errors.New("travel.repository: no pending refund request")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("travel.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("travel.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("travel.repository: failed to scan row")
)
