package cancellation

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований номеров
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	RequestRefund(ctx context.Context, id int64, reason string) error
	DecideRefund(ctx context.Context, id int64, approved bool) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// TravelRepository интерфейс репозитория бронирований экскурсий
type TravelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TravelBooking, error)
	RequestRefund(ctx context.Context, id int64, reason string) error
	DecideRefund(ctx context.Context, id int64, approved bool) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования
// границ отсечки)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
