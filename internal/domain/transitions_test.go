package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allStatuses := []BookingStatus{
		StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled,
	}

	allowed := map[BookingStatus][]BookingStatus{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
		StatusCheckedIn:  {StatusCheckedOut},
		StatusCheckedOut: {},
		StatusCancelled:  {},
	}

	for from, targets := range allowed {
		allowedSet := make(map[BookingStatus]bool, len(targets))
		for _, to := range targets {
			allowedSet[to] = true
		}

		for _, to := range allStatuses {
			got := CanTransition(from, to)
			assert.Equal(t, allowedSet[to], got, "transition %s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(BookingStatus("unknown"), StatusConfirmed))
	assert.False(t, CanTransition(StatusPending, BookingStatus("unknown")))
}

func TestValidBookingStatus(t *testing.T) {
	assert.True(t, ValidBookingStatus(StatusPending))
	assert.True(t, ValidBookingStatus(StatusCheckedOut))
	assert.False(t, ValidBookingStatus(BookingStatus("paused")))
	assert.False(t, ValidBookingStatus(BookingStatus("")))
}
