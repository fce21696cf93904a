package travel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/customerservice"
	travelRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/travel"
	"github.com/m04kA/HMS-ReservationService/internal/service/travel/models"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
)

// Service сервис бронирования экскурсий
// Вместимость проверяется суммой участников активных бронирований
// на дату внутри serializable транзакции
type Service struct {
	travelRepo     TravelRepository
	customerClient CustomerClient
	catalogClient  CatalogClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	metrics        *metrics.Metrics
	logger         Logger
}

// NewService создает новый экземпляр сервиса экскурсий
// m == nil означает, что метрики выключены
func NewService(
	travelRepo TravelRepository,
	customerClient CustomerClient,
	catalogClient CatalogClient,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		travelRepo:     travelRepo,
		customerClient: customerClient,
		catalogClient:  catalogClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		metrics:        m,
		logger:         logger,
	}
}

// Create создает бронирование экскурсии
// Цена фиксируется на момент создания: участники × цена за человека
func (s *Service) Create(ctx context.Context, req *models.CreateTravelBookingRequest) (*models.TravelBookingResponse, error) {
	s.logger.Info("Create: excursion=%d, customer=%d, date=%s, participants=%d",
		req.ExcursionID, req.CustomerID, req.TravelDate, req.ParticipantCount)

	travelDate, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.customerClient.GetCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerservice.ErrCustomerNotFound) {
			s.logger.Warn("Create: customer=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Create: customer service error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Create - customer service: %v", ErrInternal, err)
	}

	excursion, err := s.catalogClient.GetExcursion(ctx, req.ExcursionID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrExcursionNotFound) {
			s.logger.Warn("Create: excursion=%d not found", req.ExcursionID)
			return nil, ErrExcursionNotFound
		}
		s.logger.Error("Create: catalog service error for excursion=%d: %v", req.ExcursionID, err)
		return nil, fmt.Errorf("%w: Create - catalog service: %v", ErrInternal, err)
	}

	if !excursion.IsActive {
		s.logger.Warn("Create: excursion=%d is not active", req.ExcursionID)
		return nil, ErrExcursionUnavailable
	}

	var created *domain.TravelBooking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Capacity == 0 в каталоге означает отсутствие ограничения
		if excursion.Capacity > 0 {
			taken, err := s.travelRepo.SumActiveParticipants(txCtx, req.ExcursionID, travelDate)
			if err != nil {
				return fmt.Errorf("%w: Create - sum active participants: %v", ErrInternal, err)
			}
			if taken+req.ParticipantCount > excursion.Capacity {
				s.logger.Warn("Create: excursion=%d capacity exceeded on %s: taken=%d, requested=%d, capacity=%d",
					req.ExcursionID, req.TravelDate, taken, req.ParticipantCount, excursion.Capacity)
				return ErrCapacityExceeded
			}
		}

		booking := &domain.TravelBooking{
			ExcursionID:      req.ExcursionID,
			CustomerID:       req.CustomerID,
			TravelDate:       travelDate,
			ParticipantCount: req.ParticipantCount,
			Status:           domain.StatusPending,
			PaymentStatus:    domain.PaymentPending,
			BasePrice:        float64(req.ParticipantCount) * excursion.PricePerPerson,
			ExcursionName:    excursion.Name,
		}

		created, err = s.travelRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: Create - insert booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreatedTotal.WithLabelValues("travel").Inc()
	}

	s.logger.Info("Create: travel booking id=%d created, base price=%.2f", created.ID, created.BasePrice)
	return models.FromDomainTravelBooking(created), nil
}

// GetByID получает бронирование экскурсии по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TravelBookingResponse, error) {
	s.logger.Info("GetByID: fetching travel booking id=%d", id)

	booking, err := s.travelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, travelRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: travel booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for travel booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTravelBooking(booking), nil
}

// GetCustomerBookings получает бронирования экскурсий клиента
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerTravelBookingsRequest) (*models.TravelBookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching travel bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.travelRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d travel bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainTravelBookingList(bookings), nil
}

func (s *Service) validateCreate(req *models.CreateTravelBookingRequest) (time.Time, error) {
	if req.ExcursionID <= 0 {
		return time.Time{}, fmt.Errorf("%w: excursionId must be positive", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return time.Time{}, fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}
	if req.ParticipantCount < domain.MinGuestCount {
		return time.Time{}, fmt.Errorf("%w: participantCount must be at least %d", ErrInvalidInput, domain.MinGuestCount)
	}

	travelDate, err := time.Parse(domain.DateFormat, req.TravelDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: travelDate must be in format %s", ErrInvalidDate, domain.DateFormat)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if travelDate.Before(today) {
		return time.Time{}, fmt.Errorf("%w: travelDate must not be in the past", ErrInvalidDate)
	}

	return travelDate, nil
}
