package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	storage "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-ReservationService/internal/service/bookings/models"
)

// Фейки

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	charges  map[int64][]domain.ExtraCharge
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		charges:  make(map[int64][]domain.ExtraCharge),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetByCustomer(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetCharges(_ context.Context, bookingID int64) ([]domain.ExtraCharge, error) {
	return f.charges[bookingID], nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	booking := f.bookings[id]
	if booking.Status != from {
		return storage.ErrStatusConflict
	}
	booking.Status = to
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

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		RoomID:     101,
		CustomerID: 42,
		CheckIn:    date("2025-06-01"),
		CheckOut:   date("2025-06-03"),
		GuestCount: 2,
		Status:     status,
		BasePrice:  200,
	}
}

func newTestService(repo *fakeBookingRepo, roomRepo *fakeRoomRepo) *Service {
	return NewService(repo, roomRepo, fakeTxManager{}, nopLogger{})
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(7, domain.StatusConfirmed))
	svc := newTestService(repo, &fakeRoomRepo{})

	resp, err := svc.GetByID(context.Background(), 7, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Empty(t, resp.ExtraCharges)
}

func TestGetByID_SettledIncludesCharges(t *testing.T) {
	booking := testBooking(7, domain.StatusCheckedOut)
	total := 215.0
	booking.TotalPrice = &total
	repo := newFakeBookingRepo(booking)
	repo.charges[7] = []domain.ExtraCharge{{Description: "мини-бар", Amount: 15}}
	svc := newTestService(repo, &fakeRoomRepo{})

	resp, err := svc.GetByID(context.Background(), 7, 42)

	require.NoError(t, err)
	require.Len(t, resp.ExtraCharges, 1)
	assert.Equal(t, "мини-бар", resp.ExtraCharges[0].Description)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(7, domain.StatusConfirmed))
	svc := newTestService(repo, &fakeRoomRepo{})

	// Бронирование принадлежит клиенту 42
	_, err := svc.GetByID(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeRoomRepo{})

	_, err := svc.GetByID(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCancelled),
	)
	svc := newTestService(repo, &fakeRoomRepo{})

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 42})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	status := "confirmed"
	resp, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 42,
		Status:     &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	bad := "paused"
	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 42,
		Status:     &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirm(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(7, domain.StatusPending))
	svc := newTestService(repo, &fakeRoomRepo{})

	err := svc.Confirm(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[7].Status)
}

func TestConfirm_InvalidTransition(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCheckedIn, domain.StatusCheckedOut, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(7, status))
			svc := newTestService(repo, &fakeRoomRepo{})

			err := svc.Confirm(context.Background(), 7)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestCheckIn(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(7, domain.StatusConfirmed))
	roomRepo := &fakeRoomRepo{}
	svc := newTestService(repo, roomRepo)

	err := svc.CheckIn(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedIn, repo.bookings[7].Status)
	assert.Equal(t, int64(101), roomRepo.updatedRoomID)
	assert.Equal(t, domain.RoomOccupied, roomRepo.updatedStatus)
}

func TestCheckIn_NotConfirmed(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusCheckedIn, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(7, status))
			roomRepo := &fakeRoomRepo{}
			svc := newTestService(repo, roomRepo)

			err := svc.CheckIn(context.Background(), 7)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Zero(t, roomRepo.updatedRoomID)
		})
	}
}

func TestCheckIn_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeRoomRepo{})

	err := svc.CheckIn(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
