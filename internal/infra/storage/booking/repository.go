package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

// pqExclusionViolation код ошибки PostgreSQL для exclusion constraint (23P01)
// Constraint bookings_no_overlap - второй рубеж защиты инварианта
// "нет двойных бронирований" после сериализуемой транзакции
const pqExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"room_id",
	"customer_id",
	"check_in",
	"check_out",
	"guest_count",
	"status",
	"payment_status",
	"refund_requested",
	"refund_approved",
	"refund_reason",
	"refund_requested_at",
	"base_price",
	"total_price",
	"payment_method",
	"settled_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри сериализуемой транзакции usecase создания:
// проверка доступности и вставка должны быть одной атомарной единицей,
// иначе два конкурентных запроса на одни даты оба пройдут проверку
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"customer_id",
			"check_in",
			"check_out",
			"guest_count",
			"status",
			"payment_status",
			"base_price",
		).
		Values(
			booking.RoomID,
			booking.CustomerID,
			booking.CheckIn,
			booking.CheckOut,
			booking.GuestCount,
			booking.Status,
			booking.PaymentStatus,
			booking.BasePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqExclusionViolation {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы переход
// статуса и зависимые записи выполнялись над неизменным снимком
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetOverlapping возвращает активные бронирования номера, пересекающиеся
// с полуинтервалом [checkIn, checkOut)
// Cancelled и checked_out номер не занимают и из выборки исключены;
// граничный случай (check_out существующего == check_in кандидата)
// пересечением не считается
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn}).
		OrderBy("check_in ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomer получает историю бронирований клиента, новые первыми
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("check_in DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из from в to одним guarded UPDATE
// Условие status = from делает переход атомарным: конкурентный переход
// обнуляет rowsAffected, и вызывающий получает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "UpdateStatus", ErrStatusConflict)
}

// RequestRefund выставляет refund sub-state в "запрошен, решение не принято"
// Guard refund_requested = FALSE обеспечивает идемпотентность: повторный
// запрос не перезаписывает ни причину, ни решение
func (r *Repository) RequestRefund(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("refund_requested", true).
		Set("refund_approved", nil).
		Set("refund_reason", reason).
		Set("refund_requested_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "refund_requested": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RequestRefund - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "RequestRefund", ErrRefundAlreadyRequested)
}

// DecideRefund фиксирует решение по запросу на возврат
// Guard "refund_requested AND refund_approved IS NULL" не даёт решить
// несуществующий или уже решённый запрос
func (r *Repository) DecideRefund(ctx context.Context, id int64, approved bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("refund_approved", approved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "refund_requested": true}).
		Where("refund_approved IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecideRefund - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "DecideRefund", ErrNoPendingRefund)
}

// Cancel отменяет бронирование с указанием причины
// Допустим только из pending/confirmed; физического удаления нет -
// строка остаётся в истории со статусом cancelled
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "Cancel", ErrStatusConflict)
}

// Settle фиксирует расчёт при выезде: статус checked_out, итоговая
// сумма, способ оплаты, отметка об оплате
// Guard status = checked_in отклоняет повторный расчёт
func (r *Repository) Settle(ctx context.Context, id int64, totalPrice float64, paymentMethod string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCheckedOut).
		Set("total_price", totalPrice).
		Set("payment_method", paymentMethod).
		Set("payment_status", domain.PaymentPaid).
		Set("settled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusCheckedIn}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Settle - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "Settle", ErrStatusConflict)
}

// AddCharges записывает упорядоченный список доп. начислений
// Вызывается только из транзакции выезда; после её коммита начисления
// неизменяемы
func (r *Repository) AddCharges(ctx context.Context, bookingID int64, charges []domain.ExtraCharge) error {
	if len(charges) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_charges").
		Columns("booking_id", "position", "description", "amount")

	for i, charge := range charges {
		insertBuilder = insertBuilder.Values(bookingID, i, charge.Description, charge.Amount)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddCharges - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddCharges - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetCharges возвращает доп. начисления бронирования в порядке записи
func (r *Repository) GetCharges(ctx context.Context, bookingID int64) ([]domain.ExtraCharge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("description", "amount").
		From("booking_charges").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCharges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCharges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	charges := make([]domain.ExtraCharge, 0)
	for rows.Next() {
		var charge domain.ExtraCharge
		if err := rows.Scan(&charge.Description, &charge.Amount); err != nil {
			return nil, fmt.Errorf("%w: GetCharges - scan row: %v", ErrScanRow, err)
		}
		charges = append(charges, charge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCharges - rows error: %v", ErrScanRow, err)
	}

	return charges, nil
}

// execGuarded выполняет guarded UPDATE; rowsAffected = 0 означает,
// что guard не сошёлся, и возвращается guardErr
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string, guardErr error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return guardErr
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в domain.Booking
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var refundApproved sql.NullBool
	var refundRequestedAt, settledAt, cancelledAt sql.NullTime
	var totalPrice sql.NullFloat64

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.CustomerID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.GuestCount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.RefundRequested,
		&refundApproved,
		&booking.RefundReason,
		&refundRequestedAt,
		&booking.BasePrice,
		&totalPrice,
		&booking.PaymentMethod,
		&settledAt,
		&booking.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refundApproved.Valid {
		booking.RefundApproved = &refundApproved.Bool
	}
	if refundRequestedAt.Valid {
		booking.RefundRequestedAt = &refundRequestedAt.Time
	}
	if settledAt.Valid {
		booking.SettledAt = &settledAt.Time
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	if totalPrice.Valid {
		booking.TotalPrice = &totalPrice.Float64
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// activeStatusStrings возвращает статусы, занимающие номер, как строки
func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
