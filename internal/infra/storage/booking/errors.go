package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда exclusion constraint БД отклонил
	// вставку из-за пересечения с активным бронированием
	ErrOverlap = errors.New("booking.repository: booking dates overlap an active booking")

	// ErrStatusConflict возвращается, когда guarded UPDATE не нашёл строку
	// в ожидаемом исходном статусе (конкурентный переход)
	ErrStatusConflict = errors.New("booking.repository: booking is not in the expected status")

	// ErrRefundAlreadyRequested возвращается при повторной попытке
	// выставить refund_requested
	ErrRefundAlreadyRequested = errors.New("booking.repository: refund already requested")

	// ErrNoPendingRefund возвращается, когда нет запроса на возврат,
	// ожидающего решения
	ErrNoPendingRefund = errors.New("booking.repository: no pending refund request")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
