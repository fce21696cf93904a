package travel

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/customerservice"
)

// TravelRepository интерфейс репозитория бронирований экскурсий
type TravelRepository interface {
	Create(ctx context.Context, booking *domain.TravelBooking) (*domain.TravelBooking, error)
	GetByID(ctx context.Context, id int64) (*domain.TravelBooking, error)
	GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.TravelBooking, error)
	SumActiveParticipants(ctx context.Context, excursionID int64, date time.Time) (int, error)
}

// CustomerClient клиент сервиса клиентов
type CustomerClient interface {
	GetCustomer(ctx context.Context, customerID int64) (*customerservice.Customer, error)
}

// CatalogClient клиент каталога экскурсий
type CatalogClient interface {
	GetExcursion(ctx context.Context, excursionID int64) (*catalogservice.Excursion, error)
}

// TransactionManager интерфейс для управления транзакциями
// Проверка вместимости и вставка выполняются в serializable транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
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
