package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	lastReq *createBooking.Request
	resp    *createBooking.Response
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:            1,
		RoomID:        101,
		CustomerID:    42,
		CheckIn:       "2025-06-01",
		CheckOut:      "2025-06-03",
		GuestCount:    2,
		Nights:        2,
		Status:        "pending",
		PaymentStatus: "pending",
		BasePrice:     200,
	}}
	h := NewHandler(uc, nopLogger{})

	body := `{"roomId":101,"customerId":42,"checkIn":"2025-06-01","checkOut":"2025-06-03","numberOfGuests":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(101), uc.lastReq.RoomID)
	assert.Equal(t, 2, uc.lastReq.GuestCount)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 200.0, resp.BasePrice)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	body := `{"roomId":101,"customerId":42,"checkIn":"2025-06-01","checkOut":"2025-06-03","guests":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandle_OverlapConflict(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrOverlap}
	h := NewHandler(uc, nopLogger{})

	body := `{"roomId":101,"customerId":42,"checkIn":"2025-06-01","checkOut":"2025-06-03","numberOfGuests":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "OVERLAP_CONFLICT")
}
