package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-ReservationService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и простых переходов статуса
// (confirm, check-in); многошаговые операции с инвариантами - создание
// и расчёт при выезде - живут в отдельных usecase
type Service struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование доступно только его владельцу; для рассчитанных
// бронирований подгружаются доп. начисления
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d, user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != userID {
		s.logger.Warn("GetByID: booking id=%d belongs to customer=%d, requested by user=%d", id, booking.CustomerID, userID)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainBooking(booking)

	if booking.IsSettled() {
		charges, err := s.bookingRepo.GetCharges(ctx, id)
		if err != nil {
			s.logger.Error("GetByID: failed to load charges for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: GetByID - load charges: %v", ErrInternal, err)
		}
		resp.WithCharges(charges)
	}

	return resp, nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование (pending → confirmed)
func (s *Service) Confirm(ctx context.Context, id int64) error {
	s.logger.Info("Confirm: confirming booking id=%d", id)
	return s.transition(ctx, id, domain.StatusConfirmed)
}

// CheckIn заселяет гостя (confirmed → checked_in)
// Переход статуса и зеркальный статус номера пишутся одной транзакцией
func (s *Service) CheckIn(ctx context.Context, id int64) error {
	s.logger.Info("CheckIn: checking in booking id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
		}

		if !booking.CanCheckIn() {
			s.logger.Warn("CheckIn: booking id=%d cannot be checked in, status=%s", id, booking.Status)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed, domain.StatusCheckedIn); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("%w: CheckIn - update status: %v", ErrInternal, err)
		}

		if err := s.roomRepo.UpdateStatus(txCtx, booking.RoomID, domain.RoomOccupied); err != nil {
			return fmt.Errorf("%w: CheckIn - update room status: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("CheckIn: booking id=%d checked in", id)
	return nil
}

// transition выполняет одиночный guarded переход статуса
func (s *Service) transition(ctx context.Context, id int64, to domain.BookingStatus) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("transition: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("transition: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	if !domain.CanTransition(booking.Status, to) {
		s.logger.Warn("transition: booking id=%d cannot move %s -> %s", id, booking.Status, to)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, to); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Конкурентный переход между чтением и записью
			return ErrInvalidTransition
		}
		s.logger.Error("transition: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: transition - update status: %v", ErrInternal, err)
	}

	s.logger.Info("transition: booking id=%d moved %s -> %s", id, booking.Status, to)
	return nil
}
