package cancellation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingStorage "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	travelStorage "github.com/m04kA/HMS-ReservationService/internal/infra/storage/travel"
)

// Фейки

type fakeBookingRepo struct {
	booking *domain.Booking

	refundReason    string
	decidedApproved *bool
	cancelReason    string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) RequestRefund(_ context.Context, _ int64, reason string) error {
	if f.booking.RefundRequested {
		return bookingStorage.ErrRefundAlreadyRequested
	}
	f.booking.RefundRequested = true
	f.refundReason = reason
	return nil
}

func (f *fakeBookingRepo) DecideRefund(_ context.Context, _ int64, approved bool) error {
	if !f.booking.RefundDecisionPending() {
		return bookingStorage.ErrNoPendingRefund
	}
	f.booking.RefundApproved = &approved
	f.decidedApproved = &approved
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.booking.Status = domain.StatusCancelled
	f.cancelReason = reason
	return nil
}

type fakeTravelRepo struct {
	booking *domain.TravelBooking

	cancelReason string
}

func (f *fakeTravelRepo) GetByID(_ context.Context, id int64) (*domain.TravelBooking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, travelStorage.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeTravelRepo) RequestRefund(_ context.Context, _ int64, reason string) error {
	if f.booking.RefundRequested {
		return travelStorage.ErrRefundAlreadyRequested
	}
	f.booking.RefundRequested = true
	return nil
}

func (f *fakeTravelRepo) DecideRefund(_ context.Context, _ int64, approved bool) error {
	if !f.booking.RefundDecisionPending() {
		return travelStorage.ErrNoPendingRefund
	}
	f.booking.RefundApproved = &approved
	return nil
}

func (f *fakeTravelRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.booking.Status = domain.StatusCancelled
	f.cancelReason = reason
	return nil
}

type fakeRoomRepo struct {
	updatedRoomID int64
	updatedStatus domain.RoomStatus
}

func (f *fakeRoomRepo) UpdateStatus(_ context.Context, id int64, status domain.RoomStatus) error {
	f.updatedRoomID = id
	f.updatedStatus = status
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:         7,
		RoomID:     101,
		CustomerID: 42,
		CheckIn:    date("2025-06-10"),
		CheckOut:   date("2025-06-12"),
		Status:     domain.StatusConfirmed,
	}
}

func confirmedTravelBooking() *domain.TravelBooking {
	return &domain.TravelBooking{
		ID:          5,
		ExcursionID: 3,
		CustomerID:  42,
		TravelDate:  date("2025-06-10"),
		Status:      domain.StatusConfirmed,
	}
}

func newTestService(bookingRepo *fakeBookingRepo, travelRepo *fakeTravelRepo, roomRepo *fakeRoomRepo, now time.Time) *Service {
	svc := NewService(bookingRepo, travelRepo, roomRepo, fakeTxManager{}, nil, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: now}
	return svc
}

func TestRequestRoomCancellation_BeforeCutoff(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := newTestService(repo, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-07"))

	result, err := svc.RequestRoomCancellation(context.Background(), 7, "планы изменились")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 3, result.DaysUntil)
	assert.True(t, repo.booking.RefundRequested)
	assert.Equal(t, "планы изменились", repo.refundReason)
}

func TestRequestRoomCancellation_ExactlyTwoDays(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	// Поздний вечер за два дня: учитываются календарные дни, не часы
	svc := newTestService(repo, &fakeTravelRepo{}, &fakeRoomRepo{}, time.Date(2025, 6, 8, 23, 30, 0, 0, time.UTC))

	result, err := svc.RequestRoomCancellation(context.Background(), 7, "планы изменились")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 2, result.DaysUntil)
}

func TestRequestRoomCancellation_CutoffViolation(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := newTestService(repo, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-09"))

	result, err := svc.RequestRoomCancellation(context.Background(), 7, "планы изменились")

	assert.ErrorIs(t, err, ErrCutoffViolation)
	require.NotNil(t, result) // результат нужен обработчику для daysUntil в ответе
	assert.False(t, result.Accepted)
	assert.Equal(t, 1, result.DaysUntil)
	assert.False(t, repo.booking.RefundRequested)
}

func TestRequestRoomCancellation_AlreadyRequested(t *testing.T) {
	booking := confirmedBooking()
	booking.RefundRequested = true
	repo := &fakeBookingRepo{booking: booking}
	// Дата уже внутри отсечки, но повторный запрос отсекается раньше
	svc := newTestService(repo, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-09"))

	result, err := svc.RequestRoomCancellation(context.Background(), 7, "ещё раз")
	assert.ErrorIs(t, err, ErrAlreadyRequested)
	require.NotNil(t, result)
	assert.False(t, result.Accepted)
	assert.Equal(t, 1, result.DaysUntil)
}

func TestRequestRoomCancellation_InvalidState(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCheckedIn, domain.StatusCheckedOut, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = status
			svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-01"))

			_, err := svc.RequestRoomCancellation(context.Background(), 7, "планы изменились")
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestRequestRoomCancellation_InvalidReason(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{booking: confirmedBooking()}, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-01"))

	_, err := svc.RequestRoomCancellation(context.Background(), 7, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RequestRoomCancellation(context.Background(), 7, strings.Repeat("x", domain.MaxCancellationReasonLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequestRoomCancellation_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-01"))

	_, err := svc.RequestRoomCancellation(context.Background(), 99, "планы изменились")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDecideRoomRefund_Approved(t *testing.T) {
	booking := confirmedBooking()
	booking.RefundRequested = true
	reason := "планы изменились"
	booking.RefundReason = &reason
	repo := &fakeBookingRepo{booking: booking}
	roomRepo := &fakeRoomRepo{}
	svc := newTestService(repo, &fakeTravelRepo{}, roomRepo, date("2025-06-08"))

	result, err := svc.DecideRoomRefund(context.Background(), 7, true)

	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, string(domain.StatusCancelled), result.Status)
	assert.Equal(t, string(domain.StatusCancelled), result.DisplayState)
	assert.Equal(t, "планы изменились", repo.cancelReason)
	assert.Equal(t, int64(101), roomRepo.updatedRoomID)
	assert.Equal(t, domain.RoomAvailable, roomRepo.updatedStatus)
}

func TestDecideRoomRefund_Declined(t *testing.T) {
	booking := confirmedBooking()
	booking.RefundRequested = true
	repo := &fakeBookingRepo{booking: booking}
	roomRepo := &fakeRoomRepo{}
	svc := newTestService(repo, &fakeTravelRepo{}, roomRepo, date("2025-06-08"))

	result, err := svc.DecideRoomRefund(context.Background(), 7, false)

	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, string(domain.StatusConfirmed), result.Status)
	assert.Equal(t, string(domain.DisplayRefundDeclined), result.DisplayState)
	// При отказе бронирование остаётся активным и номер не трогаем
	assert.Equal(t, domain.StatusConfirmed, repo.booking.Status)
	assert.Zero(t, roomRepo.updatedRoomID)
}

func TestDecideRoomRefund_NoPendingRequest(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{booking: confirmedBooking()}, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-08"))

	_, err := svc.DecideRoomRefund(context.Background(), 7, true)
	assert.ErrorIs(t, err, ErrNoPendingRefund)
}

func TestDecideRoomRefund_AlreadyDecided(t *testing.T) {
	booking := confirmedBooking()
	booking.RefundRequested = true
	declined := false
	booking.RefundApproved = &declined
	svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeTravelRepo{}, &fakeRoomRepo{}, date("2025-06-08"))

	_, err := svc.DecideRoomRefund(context.Background(), 7, true)
	assert.ErrorIs(t, err, ErrNoPendingRefund)
}

func TestRequestTravelCancellation_BeforeCutoff(t *testing.T) {
	repo := &fakeTravelRepo{booking: confirmedTravelBooking()}
	svc := newTestService(&fakeBookingRepo{}, repo, &fakeRoomRepo{}, date("2025-06-07"))

	result, err := svc.RequestTravelCancellation(context.Background(), 5, "не смогу поехать")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 3, result.DaysUntil)
	assert.True(t, repo.booking.RefundRequested)
}

func TestRequestTravelCancellation_CutoffViolation(t *testing.T) {
	repo := &fakeTravelRepo{booking: confirmedTravelBooking()}
	svc := newTestService(&fakeBookingRepo{}, repo, &fakeRoomRepo{}, date("2025-06-09"))

	result, err := svc.RequestTravelCancellation(context.Background(), 5, "не смогу поехать")

	assert.ErrorIs(t, err, ErrCutoffViolation)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.DaysUntil)
}

func TestDecideTravelRefund_Approved(t *testing.T) {
	booking := confirmedTravelBooking()
	booking.RefundRequested = true
	repo := &fakeTravelRepo{booking: booking}
	svc := newTestService(&fakeBookingRepo{}, repo, &fakeRoomRepo{}, date("2025-06-08"))

	result, err := svc.DecideTravelRefund(context.Background(), 5, true)

	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, string(domain.StatusCancelled), result.Status)
	// Причина возврата не сохранялась - используется запасная формулировка
	assert.Equal(t, "refund approved", repo.cancelReason)
}

func TestDecideTravelRefund_Declined(t *testing.T) {
	booking := confirmedTravelBooking()
	booking.RefundRequested = true
	repo := &fakeTravelRepo{booking: booking}
	svc := newTestService(&fakeBookingRepo{}, repo, &fakeRoomRepo{}, date("2025-06-08"))

	result, err := svc.DecideTravelRefund(context.Background(), 5, false)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), result.Status)
	assert.Equal(t, string(domain.DisplayRefundDeclined), result.DisplayState)
	assert.Equal(t, domain.StatusConfirmed, repo.booking.Status)
}
