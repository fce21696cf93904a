package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	customerClient "github.com/m04kA/HMS-ReservationService/internal/integrations/customerservice"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
)

// UseCase use case для создания бронирования номера
type UseCase struct {
	bookingRepo    BookingRepository
	roomRepo       RoomRepository
	customerClient CustomerServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	metrics        *metrics.Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// m == nil означает, что метрики выключены
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		customerClient: customerClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		metrics:        m,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка идут в сериализуемой транзакции
// с блокировкой строки номера; exclusion constraint БД остаётся
// последней линией обороны от гонки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%d, customer=%d, checkIn=%s, checkOut=%s, guests=%d",
		req.RoomID, req.CustomerID, req.CheckIn, req.CheckOut, req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Парсим и проверяем диапазон дат
	now := uc.timeProvider.Now()
	checkIn, checkOut, err := parseDateRange(req.CheckIn, req.CheckOut, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: date range validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование клиента
	if _, err := uc.customerClient.GetCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем номер с блокировкой (FOR UPDATE): конкурентные
		// создания на тот же номер выстраиваются в очередь
		room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}

		// 4.2. Проверяем пригодность номера
		if err := validateRoom(room, req.GuestCount); err != nil {
			uc.logger.Warn("CreateBooking: room validation failed for room id=%d: %v", req.RoomID, err)
			return err
		}

		// 4.3. Проверяем пересечения с активными бронированиями
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.RoomID, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: room id=%d has %d overlapping bookings for [%s, %s)",
				req.RoomID, len(overlapping), req.CheckIn, req.CheckOut)
			return ErrOverlap
		}

		// 4.4. Создаем бронирование; цена фиксируется на момент создания
		nights := int(checkOut.Sub(checkIn).Hours() / 24)
		booking := &domain.Booking{
			RoomID:        req.RoomID,
			CustomerID:    req.CustomerID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			GuestCount:    req.GuestCount,
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
			BasePrice:     float64(nights) * room.PricePerNight,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint мог сработать при гонке, которую
			// не поймала проверка выше
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("CreateBooking: exclusion constraint rejected booking for room id=%d", req.RoomID)
				return ErrOverlap
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrOverlap) && uc.metrics != nil {
			uc.metrics.OverlapConflictsTotal.Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BookingsCreatedTotal.WithLabelValues("room").Inc()
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, base price=%.2f", result.ID, result.BasePrice)

	return &Response{
		ID:            result.ID,
		RoomID:        result.RoomID,
		CustomerID:    result.CustomerID,
		CheckIn:       result.CheckIn.Format(domain.DateFormat),
		CheckOut:      result.CheckOut.Format(domain.DateFormat),
		GuestCount:    result.GuestCount,
		Nights:        result.Nights(),
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		BasePrice:     result.BasePrice,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
