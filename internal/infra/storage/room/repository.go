package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

var roomColumns = []string{
	"id",
	"number",
	"room_type",
	"capacity",
	"price_per_night",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с номерами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория номеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает номер по ID
// Внутри транзакции строка блокируется (FOR UPDATE): usecase создания
// бронирования держит блокировку номера на время проверки доступности
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// ListAvailable возвращает номера по фильтру
// В режиме каталога (даты не заданы) применяются только статические
// фильтры. В режиме бронирования дополнительно исключаются номера,
// у которых есть активное бронирование, пересекающее [checkIn, checkOut)
// как полуинтервал, и номера на обслуживании
func (r *Repository) ListAvailable(ctx context.Context, filter domain.AvailableRoomsFilter) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		OrderBy("number ASC")

	if filter.RoomType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_type": *filter.RoomType})
	}
	if filter.Guests != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity": *filter.Guests})
	}

	if filter.AvailabilityRequested() {
		statuses := activeStatusStrings()
		args := make([]interface{}, 0, len(statuses)+2)
		for _, s := range statuses {
			args = append(args, s)
		}
		args = append(args, *filter.CheckOut, *filter.CheckIn)

		selectBuilder = selectBuilder.
			Where(squirrel.NotEq{"status": domain.RoomMaintenance}).
			Where(squirrel.Expr(fmt.Sprintf(
				`NOT EXISTS (
					SELECT 1 FROM bookings b
					WHERE b.room_id = rooms.id
					  AND b.status IN (%s)
					  AND b.check_in < ?
					  AND b.check_out > ?
				)`,
				squirrel.Placeholders(len(statuses)),
			), args...))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// UpdateStatus обновляет денормализованный статус номера
// Пишется только в той же транзакции, что и переход бронирования,
// который меняет занятость (check-in/check-out/cancel)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// activeStatusStrings возвращает статусы, занимающие номер, как строки
func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRoom сканирует одну строку в domain.Room
func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&room.ID,
		&room.Number,
		&room.RoomType,
		&room.Capacity,
		&room.PricePerNight,
		&room.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}
