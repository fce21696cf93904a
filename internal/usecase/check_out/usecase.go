package check_out

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
)

// UseCase use case выселения с расчётом
// Начисления, итог и переход checked_in → checked_out фиксируются
// одной транзакцией; повторный расчёт по той же брони невозможен
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// m == nil означает, что метрики выключены
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
	}
}

// Execute выполняет расчёт при выезде и возвращает счёт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckOut: booking id=%d, charges=%d, method=%s",
		req.BookingID, len(req.ExtraCharges), req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckOut: validation failed: %v", err)
		return nil, err
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))

	charges := make([]domain.ExtraCharge, len(req.ExtraCharges))
	for i, c := range req.ExtraCharges {
		charges[i] = domain.ExtraCharge{Description: c.Description, Amount: c.Amount}
	}

	var invoice *domain.Invoice

	// 2. Расчёт и переход статуса в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckOut: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckOut: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Повторный расчёт отличаем от прочих недопустимых статусов
		if booking.IsSettled() {
			uc.logger.Warn("CheckOut: booking id=%d is already settled", req.BookingID)
			return ErrAlreadySettled
		}
		if !booking.CanCheckOut() {
			uc.logger.Warn("CheckOut: booking id=%d is not checked in, status=%s", req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		// 2.3. Вычисляем итог; отрицательный итог ограничивается нулём
		total, clamped := domain.Settle(booking.BasePrice, charges)
		if clamped {
			uc.logger.Warn("CheckOut: booking id=%d total clamped to zero (base=%.2f)", req.BookingID, booking.BasePrice)
		}

		// 2.4. Сохраняем начисления с сохранением порядка
		if len(charges) > 0 {
			if err := uc.bookingRepo.AddCharges(txCtx, req.BookingID, charges); err != nil {
				uc.logger.Error("CheckOut: failed to add charges for booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to add charges: %v", ErrInternal, err)
			}
		}

		// 2.5. Guarded переход checked_in → checked_out с фиксацией итога
		if err := uc.bookingRepo.Settle(txCtx, req.BookingID, total, paymentMethod); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				// Конкурентный расчёт успел раньше
				return ErrAlreadySettled
			}
			uc.logger.Error("CheckOut: failed to settle booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to settle booking: %v", ErrInternal, err)
		}

		// 2.6. Освобождаем номер в той же транзакции
		if err := uc.roomRepo.UpdateStatus(txCtx, booking.RoomID, domain.RoomAvailable); err != nil {
			uc.logger.Error("CheckOut: failed to release room id=%d: %v", booking.RoomID, err)
			return fmt.Errorf("%w: failed to release room: %v", ErrInternal, err)
		}

		// 2.7. Формируем счёт
		lines := make([]domain.InvoiceLine, len(charges))
		for i, c := range charges {
			lines[i] = domain.InvoiceLine{Description: c.Description, Amount: c.Amount}
		}

		invoice = &domain.Invoice{
			Number:        uuid.NewString(),
			BookingID:     booking.ID,
			CustomerID:    booking.CustomerID,
			RoomID:        booking.RoomID,
			CheckIn:       booking.CheckIn,
			CheckOut:      booking.CheckOut,
			Nights:        booking.Nights(),
			BasePrice:     booking.BasePrice,
			LineItems:     lines,
			Total:         total,
			Clamped:       clamped,
			PaymentMethod: paymentMethod,
			IssuedAt:      uc.timeProvider.Now(),
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementsTotal.Inc()
		if invoice.Clamped {
			uc.metrics.SettlementClampedTotal.Inc()
		}
	}

	uc.logger.Info("CheckOut: booking id=%d settled, invoice=%s, total=%.2f", req.BookingID, invoice.Number, invoice.Total)

	lines := make([]InvoiceLineResponse, len(invoice.LineItems))
	for i, l := range invoice.LineItems {
		lines[i] = InvoiceLineResponse{Description: l.Description, Amount: l.Amount}
	}

	return &Response{
		InvoiceNumber: invoice.Number,
		BookingID:     invoice.BookingID,
		CustomerID:    invoice.CustomerID,
		RoomID:        invoice.RoomID,
		CheckIn:       invoice.CheckIn.Format(domain.DateFormat),
		CheckOut:      invoice.CheckOut.Format(domain.DateFormat),
		Nights:        invoice.Nights,
		BasePrice:     invoice.BasePrice,
		LineItems:     lines,
		Total:         invoice.Total,
		Clamped:       invoice.Clamped,
		PaymentMethod: invoice.PaymentMethod,
		IssuedAt:      invoice.IssuedAt,
	}, nil
}
