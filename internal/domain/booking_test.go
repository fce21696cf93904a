package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBooking_Overlaps(t *testing.T) {
	booking := &Booking{
		CheckIn:  date("2025-06-01"),
		CheckOut: date("2025-06-03"),
	}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     bool
	}{
		{
			name:     "полное совпадение",
			checkIn:  "2025-06-01",
			checkOut: "2025-06-03",
			want:     true,
		},
		{
			name:     "частичное пересечение справа",
			checkIn:  "2025-06-02",
			checkOut: "2025-06-05",
			want:     true,
		},
		{
			name:     "частичное пересечение слева",
			checkIn:  "2025-05-30",
			checkOut: "2025-06-02",
			want:     true,
		},
		{
			name:     "кандидат внутри брони",
			checkIn:  "2025-06-01",
			checkOut: "2025-06-02",
			want:     true,
		},
		{
			name:     "бронь внутри кандидата",
			checkIn:  "2025-05-30",
			checkOut: "2025-06-10",
			want:     true,
		},
		{
			name:     "заезд в день выезда не конфликтует",
			checkIn:  "2025-06-03",
			checkOut: "2025-06-05",
			want:     false,
		},
		{
			name:     "выезд в день заезда не конфликтует",
			checkIn:  "2025-05-30",
			checkOut: "2025-06-01",
			want:     false,
		},
		{
			name:     "полностью раньше",
			checkIn:  "2025-05-01",
			checkOut: "2025-05-10",
			want:     false,
		},
		{
			name:     "полностью позже",
			checkIn:  "2025-07-01",
			checkOut: "2025-07-10",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := booking.Overlaps(date(tt.checkIn), date(tt.checkOut))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBooking_Nights(t *testing.T) {
	booking := &Booking{
		CheckIn:  date("2025-06-01"),
		CheckOut: date("2025-06-03"),
	}
	assert.Equal(t, 2, booking.Nights())

	oneNight := &Booking{
		CheckIn:  date("2025-06-01"),
		CheckOut: date("2025-06-02"),
	}
	assert.Equal(t, 1, oneNight.Nights())
}

func TestBooking_StatusPredicates(t *testing.T) {
	tests := []struct {
		status       BookingStatus
		active       bool
		cancellable  bool
		canCheckIn   bool
		canCheckOut  bool
		terminal     bool
	}{
		{StatusPending, true, true, false, false, false},
		{StatusConfirmed, true, true, true, false, false},
		{StatusCheckedIn, true, false, false, true, false},
		{StatusCheckedOut, false, false, false, false, true},
		{StatusCancelled, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.cancellable, b.CanBeCancelled())
			assert.Equal(t, tt.canCheckIn, b.CanCheckIn())
			assert.Equal(t, tt.canCheckOut, b.CanCheckOut())
			assert.Equal(t, tt.terminal, b.IsTerminal())
		})
	}
}

func TestBookingDisplayState(t *testing.T) {
	approved := true
	declined := false

	tests := []struct {
		name            string
		status          BookingStatus
		refundRequested bool
		refundApproved  *bool
		want            DisplayState
	}{
		{
			name:   "без запроса на возврат отображается хранимый статус",
			status: StatusConfirmed,
			want:   DisplayState(StatusConfirmed),
		},
		{
			name:            "запрос подан, решения нет - ожидает отмены",
			status:          StatusConfirmed,
			refundRequested: true,
			want:            DisplayCancellationPending,
		},
		{
			name:            "возврат отклонён - refund_declined",
			status:          StatusConfirmed,
			refundRequested: true,
			refundApproved:  &declined,
			want:            DisplayRefundDeclined,
		},
		{
			name:            "возврат одобрен, бронь отменена - cancelled",
			status:          StatusCancelled,
			refundRequested: true,
			refundApproved:  &approved,
			want:            DisplayState(StatusCancelled),
		},
		{
			name:            "pending с нерассмотренным запросом - ожидает отмены",
			status:          StatusPending,
			refundRequested: true,
			want:            DisplayCancellationPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BookingDisplayState(tt.status, tt.refundRequested, tt.refundApproved)
			assert.Equal(t, tt.want, got)
		})
	}
}
