package travel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

var travelBookingColumns = []string{
	"id",
	"excursion_id",
	"customer_id",
	"travel_date",
	"participant_count",
	"status",
	"payment_status",
	"refund_requested",
	"refund_approved",
	"refund_reason",
	"refund_requested_at",
	"base_price",
	"excursion_name",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями экскурсий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований экскурсий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование экскурсии
// Вызывается внутри сериализуемой транзакции: проверка вместимости
// и вставка - одна атомарная единица
func (r *Repository) Create(ctx context.Context, booking *domain.TravelBooking) (*domain.TravelBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("travel_bookings").
		Columns(
			"excursion_id",
			"customer_id",
			"travel_date",
			"participant_count",
			"status",
			"payment_status",
			"base_price",
			"excursion_name",
		).
		Values(
			booking.ExcursionID,
			booking.CustomerID,
			booking.TravelDate,
			booking.ParticipantCount,
			booking.Status,
			booking.PaymentStatus,
			booking.BasePrice,
			booking.ExcursionName,
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
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование экскурсии по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TravelBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(travelBookingColumns...).
		From("travel_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanTravelBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan travel booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomer получает историю бронирований экскурсий клиента
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.TravelBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(travelBookingColumns...).
		From("travel_bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("travel_date DESC, id DESC")

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

	return scanTravelBookings(rows)
}

// SumActiveParticipants возвращает суммарное число участников активных
// бронирований экскурсии на дату
// Внутри транзакции строки блокируются (FOR UPDATE), поэтому агрегат
// считается по выбранным строкам на стороне приложения
func (r *Repository) SumActiveParticipants(ctx context.Context, excursionID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("participant_count").
		From("travel_bookings").
		Where(squirrel.Eq{"excursion_id": excursionID}).
		Where(squirrel.Eq{"travel_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumActiveParticipants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SumActiveParticipants - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var count int
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("%w: SumActiveParticipants - scan row: %v", ErrScanRow, err)
		}
		total += count
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: SumActiveParticipants - rows error: %v", ErrScanRow, err)
	}

	return total, nil
}

// RequestRefund выставляет refund sub-state в "запрошен, решение не принято"
func (r *Repository) RequestRefund(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("travel_bookings").
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
func (r *Repository) DecideRefund(ctx context.Context, id int64, approved bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("travel_bookings").
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

// Cancel отменяет бронирование экскурсии с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("travel_bookings").
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

// scanTravelBooking сканирует одну строку в domain.TravelBooking
func scanTravelBooking(row rowScanner) (*domain.TravelBooking, error) {
	var booking domain.TravelBooking
	var createdAt, updatedAt sql.NullTime
	var refundApproved sql.NullBool
	var refundRequestedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ExcursionID,
		&booking.CustomerID,
		&booking.TravelDate,
		&booking.ParticipantCount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.RefundRequested,
		&refundApproved,
		&booking.RefundReason,
		&refundRequestedAt,
		&booking.BasePrice,
		&booking.ExcursionName,
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
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanTravelBookings сканирует результаты запроса в слайс бронирований
func scanTravelBookings(rows *sql.Rows) ([]*domain.TravelBooking, error) {
	bookings := make([]*domain.TravelBooking, 0)

	for rows.Next() {
		booking, err := scanTravelBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTravelBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTravelBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// activeStatusStrings возвращает статусы, занимающие места, как строки
func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
