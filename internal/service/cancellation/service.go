package cancellation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	travelRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/travel"
	"github.com/m04kA/HMS-ReservationService/internal/service/cancellation/models"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
)

const (
	kindRoom   = "room"
	kindTravel = "travel"
)

// Service движок политики отмен: проверка отсечки, идемпотичная фиксация
// запроса на возврат и решение по нему. Порядок проверок фиксирован:
// существование → допустимый статус → повторный запрос → отсечка
type Service struct {
	bookingRepo  BookingRepository
	travelRepo   TravelRepository
	roomRepo     RoomRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса отмен
// m == nil означает, что метрики выключены
func NewService(
	bookingRepo BookingRepository,
	travelRepo TravelRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		travelRepo:   travelRepo,
		roomRepo:     roomRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
	}
}

// RequestRoomCancellation обрабатывает запрос на отмену бронирования номера
// Опорная дата - день заезда. При отказе по отсечке возвращает результат
// с числом оставшихся дней вместе с ErrCutoffViolation
func (s *Service) RequestRoomCancellation(ctx context.Context, bookingID int64, reason string) (*models.CancellationResult, error) {
	s.logger.Info("RequestRoomCancellation: booking id=%d", bookingID)

	if err := validateReason(reason); err != nil {
		return nil, err
	}

	var result *models.CancellationResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: RequestRoomCancellation - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("RequestRoomCancellation: booking id=%d not cancellable, status=%s", bookingID, booking.Status)
			return ErrInvalidState
		}

		eligible, days := domain.CancellationEligible(booking.CheckIn, s.timeProvider.Now())
		result = &models.CancellationResult{BookingID: bookingID, Accepted: eligible, DaysUntil: days}

		// Повторный запрос проверяется до отсечки: дата могла приблизиться
		// с момента первого запроса, но его судьба от этого не меняется
		if booking.RefundRequested {
			s.logger.Warn("RequestRoomCancellation: booking id=%d refund already requested", bookingID)
			result.Accepted = false
			return ErrAlreadyRequested
		}

		if !eligible {
			s.logger.Warn("RequestRoomCancellation: booking id=%d rejected by cutoff, days until check-in=%d", bookingID, days)
			if s.metrics != nil {
				s.metrics.CutoffViolationsTotal.Inc()
			}
			return ErrCutoffViolation
		}

		if err := s.bookingRepo.RequestRefund(txCtx, bookingID, reason); err != nil {
			if errors.Is(err, bookingRepo.ErrRefundAlreadyRequested) {
				return ErrAlreadyRequested
			}
			return fmt.Errorf("%w: RequestRoomCancellation - request refund: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCutoffViolation) || errors.Is(err, ErrAlreadyRequested) {
			// Результат с daysUntil нужен обработчику для тела ошибки
			return result, err
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RefundRequestsTotal.WithLabelValues(kindRoom).Inc()
	}

	s.logger.Info("RequestRoomCancellation: booking id=%d refund requested, days until check-in=%d", bookingID, result.DaysUntil)
	return result, nil
}

// RequestTravelCancellation обрабатывает запрос на отмену бронирования
// экскурсии. Опорная дата - день экскурсии
func (s *Service) RequestTravelCancellation(ctx context.Context, bookingID int64, reason string) (*models.CancellationResult, error) {
	s.logger.Info("RequestTravelCancellation: travel booking id=%d", bookingID)

	if err := validateReason(reason); err != nil {
		return nil, err
	}

	var result *models.CancellationResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.travelRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, travelRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: RequestTravelCancellation - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("RequestTravelCancellation: travel booking id=%d not cancellable, status=%s", bookingID, booking.Status)
			return ErrInvalidState
		}

		eligible, days := domain.CancellationEligible(booking.TravelDate, s.timeProvider.Now())
		result = &models.CancellationResult{BookingID: bookingID, Accepted: eligible, DaysUntil: days}

		if booking.RefundRequested {
			s.logger.Warn("RequestTravelCancellation: travel booking id=%d refund already requested", bookingID)
			result.Accepted = false
			return ErrAlreadyRequested
		}

		if !eligible {
			s.logger.Warn("RequestTravelCancellation: travel booking id=%d rejected by cutoff, days until travel=%d", bookingID, days)
			if s.metrics != nil {
				s.metrics.CutoffViolationsTotal.Inc()
			}
			return ErrCutoffViolation
		}

		if err := s.travelRepo.RequestRefund(txCtx, bookingID, reason); err != nil {
			if errors.Is(err, travelRepo.ErrRefundAlreadyRequested) {
				return ErrAlreadyRequested
			}
			return fmt.Errorf("%w: RequestTravelCancellation - request refund: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCutoffViolation) || errors.Is(err, ErrAlreadyRequested) {
			return result, err
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RefundRequestsTotal.WithLabelValues(kindTravel).Inc()
	}

	s.logger.Info("RequestTravelCancellation: travel booking id=%d refund requested, days until travel=%d", bookingID, result.DaysUntil)
	return result, nil
}

// DecideRoomRefund фиксирует решение по запросу на возврат
// При одобрении бронирование отменяется и номер освобождается
// той же транзакцией; при отказе статус бронирования не меняется
func (s *Service) DecideRoomRefund(ctx context.Context, bookingID int64, approved bool) (*models.RefundDecisionResult, error) {
	s.logger.Info("DecideRoomRefund: booking id=%d, approved=%v", bookingID, approved)

	var result *models.RefundDecisionResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: DecideRoomRefund - repository error: %v", ErrInternal, err)
		}

		if !booking.RefundDecisionPending() {
			s.logger.Warn("DecideRoomRefund: booking id=%d has no pending refund request", bookingID)
			return ErrNoPendingRefund
		}

		if err := s.bookingRepo.DecideRefund(txCtx, bookingID, approved); err != nil {
			if errors.Is(err, bookingRepo.ErrNoPendingRefund) {
				return ErrNoPendingRefund
			}
			return fmt.Errorf("%w: DecideRoomRefund - decide refund: %v", ErrInternal, err)
		}

		status := booking.Status
		if approved {
			reason := refundReason(booking.RefundReason)
			if err := s.bookingRepo.Cancel(txCtx, bookingID, reason); err != nil {
				if errors.Is(err, bookingRepo.ErrStatusConflict) {
					return ErrInvalidState
				}
				return fmt.Errorf("%w: DecideRoomRefund - cancel booking: %v", ErrInternal, err)
			}
			status = domain.StatusCancelled

			if err := s.roomRepo.UpdateStatus(txCtx, booking.RoomID, domain.RoomAvailable); err != nil {
				return fmt.Errorf("%w: DecideRoomRefund - release room: %v", ErrInternal, err)
			}
		}

		result = &models.RefundDecisionResult{
			BookingID:    bookingID,
			Approved:     approved,
			Status:       string(status),
			DisplayState: string(domain.BookingDisplayState(status, true, &approved)),
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("DecideRoomRefund: booking id=%d decision recorded, approved=%v", bookingID, approved)
	return result, nil
}

// DecideTravelRefund фиксирует решение по запросу на возврат
// для бронирования экскурсии
func (s *Service) DecideTravelRefund(ctx context.Context, bookingID int64, approved bool) (*models.RefundDecisionResult, error) {
	s.logger.Info("DecideTravelRefund: travel booking id=%d, approved=%v", bookingID, approved)

	var result *models.RefundDecisionResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.travelRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, travelRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: DecideTravelRefund - repository error: %v", ErrInternal, err)
		}

		if !booking.RefundDecisionPending() {
			s.logger.Warn("DecideTravelRefund: travel booking id=%d has no pending refund request", bookingID)
			return ErrNoPendingRefund
		}

		if err := s.travelRepo.DecideRefund(txCtx, bookingID, approved); err != nil {
			if errors.Is(err, travelRepo.ErrNoPendingRefund) {
				return ErrNoPendingRefund
			}
			return fmt.Errorf("%w: DecideTravelRefund - decide refund: %v", ErrInternal, err)
		}

		status := booking.Status
		if approved {
			reason := refundReason(booking.RefundReason)
			if err := s.travelRepo.Cancel(txCtx, bookingID, reason); err != nil {
				if errors.Is(err, travelRepo.ErrStatusConflict) {
					return ErrInvalidState
				}
				return fmt.Errorf("%w: DecideTravelRefund - cancel booking: %v", ErrInternal, err)
			}
			status = domain.StatusCancelled
		}

		result = &models.RefundDecisionResult{
			BookingID:    bookingID,
			Approved:     approved,
			Status:       string(status),
			DisplayState: string(domain.BookingDisplayState(status, true, &approved)),
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("DecideTravelRefund: travel booking id=%d decision recorded, approved=%v", bookingID, approved)
	return result, nil
}

func validateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

func refundReason(reason *string) string {
	if reason != nil && *reason != "" {
		return *reason
	}
	return "refund approved"
}
