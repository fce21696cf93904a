package check_out

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	storage "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
)

// Фейки

type fakeBookingRepo struct {
	booking *domain.Booking

	addedCharges  []domain.ExtraCharge
	settledTotal  float64
	settledMethod string
	settleErr     error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, storage.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) AddCharges(_ context.Context, _ int64, charges []domain.ExtraCharge) error {
	f.addedCharges = append(f.addedCharges, charges...)
	return nil
}

func (f *fakeBookingRepo) Settle(_ context.Context, _ int64, totalPrice float64, paymentMethod string) error {
	if f.settleErr != nil {
		return f.settleErr
	}
	f.settledTotal = totalPrice
	f.settledMethod = paymentMethod
	f.booking.Status = domain.StatusCheckedOut
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

func checkedInBooking() *domain.Booking {
	return &domain.Booking{
		ID:            7,
		RoomID:        101,
		CustomerID:    42,
		CheckIn:       date("2025-06-01"),
		CheckOut:      date("2025-06-03"),
		GuestCount:    2,
		Status:        domain.StatusCheckedIn,
		PaymentStatus: domain.PaymentPaid,
		BasePrice:     200,
	}
}

func newTestUseCase(bookingRepo *fakeBookingRepo, roomRepo *fakeRoomRepo) *UseCase {
	uc := NewUseCase(bookingRepo, roomRepo, fakeTxManager{}, nil, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookingRepo := &fakeBookingRepo{booking: checkedInBooking()}
	roomRepo := &fakeRoomRepo{}
	uc := newTestUseCase(bookingRepo, roomRepo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		ExtraCharges: []ChargeInput{
			{Description: "мини-бар", Amount: 15},
		},
		PaymentMethod: "card",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.InvoiceNumber)
	assert.Equal(t, int64(7), resp.BookingID)
	assert.Equal(t, 2, resp.Nights)
	assert.Equal(t, 200.0, resp.BasePrice)
	assert.Equal(t, 215.0, resp.Total) // 200 + 15
	assert.False(t, resp.Clamped)
	assert.Equal(t, "card", resp.PaymentMethod)
	require.Len(t, resp.LineItems, 1)
	assert.Equal(t, "мини-бар", resp.LineItems[0].Description)

	assert.Equal(t, 215.0, bookingRepo.settledTotal)
	assert.Equal(t, "card", bookingRepo.settledMethod)
	assert.Len(t, bookingRepo.addedCharges, 1)
	assert.Equal(t, int64(101), roomRepo.updatedRoomID)
	assert.Equal(t, domain.RoomAvailable, roomRepo.updatedStatus)
}

func TestExecute_NoCharges(t *testing.T) {
	bookingRepo := &fakeBookingRepo{booking: checkedInBooking()}
	uc := newTestUseCase(bookingRepo, &fakeRoomRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:     7,
		PaymentMethod: "cash",
	})

	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.Total)
	assert.Empty(t, resp.LineItems)
	assert.Empty(t, bookingRepo.addedCharges)
}

func TestExecute_TotalClampedToZero(t *testing.T) {
	bookingRepo := &fakeBookingRepo{booking: checkedInBooking()}
	uc := newTestUseCase(bookingRepo, &fakeRoomRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 7,
		ExtraCharges: []ChargeInput{
			{Description: "компенсация", Amount: -300},
		},
		PaymentMethod: "card",
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Total)
	assert.True(t, resp.Clamped)
	assert.Equal(t, 0.0, bookingRepo.settledTotal)
}

func TestExecute_AlreadySettled(t *testing.T) {
	booking := checkedInBooking()
	booking.Status = domain.StatusCheckedOut
	settledAt := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	booking.SettledAt = &settledAt
	bookingRepo := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookingRepo, &fakeRoomRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     7,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, ErrAlreadySettled)
}

func TestExecute_ConcurrentSettleConflict(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		booking:   checkedInBooking(),
		settleErr: storage.ErrStatusConflict,
	}
	uc := newTestUseCase(bookingRepo, &fakeRoomRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     7,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, ErrAlreadySettled)
}

func TestExecute_NotCheckedIn(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			booking := checkedInBooking()
			booking.Status = status
			uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeRoomRepo{})

			_, err := uc.Execute(context.Background(), &Request{
				BookingID:     7,
				PaymentMethod: "card",
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeRoomRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     99,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: checkedInBooking()}, &fakeRoomRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"нулевой bookingId", &Request{BookingID: 0, PaymentMethod: "card"}},
		{"пустой способ оплаты", &Request{BookingID: 7}},
		{"неизвестный способ оплаты", &Request{BookingID: 7, PaymentMethod: "crypto"}},
		{"начисление без описания", &Request{
			BookingID:     7,
			PaymentMethod: "card",
			ExtraCharges:  []ChargeInput{{Description: "  ", Amount: 10}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
