package room

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// captureExecutor перехватывает построенный SQL и аргументы,
// не выполняя запрос
type captureExecutor struct {
	query string
	args  []interface{}
}

var errStubExecutor = errors.New("stub executor")

func (e *captureExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return nil, errStubExecutor
}

func (e *captureExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query, e.args = query, args
	return nil, errStubExecutor
}

func (e *captureExecutor) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func TestListAvailable_FiltersByActiveStatuses(t *testing.T) {
	executor := &captureExecutor{}
	repo := NewRepository(executor)

	checkIn := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	_, err := repo.ListAvailable(context.Background(), domain.AvailableRoomsFilter{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	})
	require.ErrorIs(t, err, ErrExecQuery)

	assert.Contains(t, executor.query, "NOT EXISTS")
	// Статусы передаются параметрами, а не зашиты в текст запроса
	assert.NotContains(t, executor.query, "'pending'")

	// Аргументы: status <> maintenance, активные статусы, checkOut, checkIn
	require.Len(t, executor.args, len(domain.ActiveStatuses)+3)
	assert.Equal(t, domain.RoomMaintenance, executor.args[0])
	for i, s := range domain.ActiveStatuses {
		assert.Equal(t, string(s), executor.args[i+1])
	}
	assert.Equal(t, checkOut, executor.args[len(domain.ActiveStatuses)+1])
	assert.Equal(t, checkIn, executor.args[len(domain.ActiveStatuses)+2])
}

func TestActiveStatusStrings(t *testing.T) {
	statuses := activeStatusStrings()

	assert.Equal(t, []string{"pending", "confirmed", "checked_in"}, statuses)
}
