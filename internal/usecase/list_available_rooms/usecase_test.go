package list_available_rooms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
)

type fakeRoomRepo struct {
	lastFilter domain.AvailableRoomsFilter
	rooms      []*domain.Room
}

func (f *fakeRoomRepo) ListAvailable(_ context.Context, filter domain.AvailableRoomsFilter) ([]*domain.Room, error) {
	f.lastFilter = filter
	return f.rooms, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_CatalogMode(t *testing.T) {
	repo := &fakeRoomRepo{rooms: []*domain.Room{
		{ID: 1, Number: "101", RoomType: domain.RoomStandard, Capacity: 2, PricePerNight: 100, Status: domain.RoomAvailable},
		{ID: 2, Number: "201", RoomType: domain.RoomDeluxe, Capacity: 4, PricePerNight: 250, Status: domain.RoomAvailable},
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{})

	require.NoError(t, err)
	require.Len(t, resp.Rooms, 2)
	assert.Equal(t, "101", resp.Rooms[0].Number)
	assert.False(t, repo.lastFilter.AvailabilityRequested())
}

func TestExecute_AvailabilityMode(t *testing.T) {
	repo := &fakeRoomRepo{}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		CheckIn:  ptr.Ptr("2025-06-01"),
		CheckOut: ptr.Ptr("2025-06-03"),
		Guests:   ptr.Ptr(2),
		RoomType: ptr.Ptr("deluxe"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Rooms)
	assert.True(t, repo.lastFilter.AvailabilityRequested())
	require.NotNil(t, repo.lastFilter.Guests)
	assert.Equal(t, 2, *repo.lastFilter.Guests)
	require.NotNil(t, repo.lastFilter.RoomType)
	assert.Equal(t, domain.RoomDeluxe, *repo.lastFilter.RoomType)
}

func TestExecute_RoomTypeNormalized(t *testing.T) {
	repo := &fakeRoomRepo{}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RoomType: ptr.Ptr("  Suite ")})

	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.RoomType)
	assert.Equal(t, domain.RoomSuite, *repo.lastFilter.RoomType)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"только checkIn", &Request{CheckIn: ptr.Ptr("2025-06-01")}},
		{"только checkOut", &Request{CheckOut: ptr.Ptr("2025-06-03")}},
		{"checkOut равен checkIn", &Request{CheckIn: ptr.Ptr("2025-06-01"), CheckOut: ptr.Ptr("2025-06-01")}},
		{"checkOut раньше checkIn", &Request{CheckIn: ptr.Ptr("2025-06-03"), CheckOut: ptr.Ptr("2025-06-01")}},
		{"некорректный формат", &Request{CheckIn: ptr.Ptr("01.06.2025"), CheckOut: ptr.Ptr("2025-06-03")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidDateRange)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Guests: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{RoomType: ptr.Ptr("penthouse")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
