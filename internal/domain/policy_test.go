package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		now    time.Time
		want   int
	}{
		{
			name:   "ровно два дня",
			anchor: date("2025-06-10"),
			now:    date("2025-06-08"),
			want:   2,
		},
		{
			name:   "время внутри дня не влияет",
			anchor: date("2025-06-10"),
			now:    time.Date(2025, 6, 8, 23, 59, 59, 0, time.UTC),
			want:   2,
		},
		{
			name:   "тот же день",
			anchor: date("2025-06-10"),
			now:    date("2025-06-10"),
			want:   0,
		},
		{
			name:   "опорная дата в прошлом",
			anchor: date("2025-06-10"),
			now:    date("2025-06-12"),
			want:   -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.anchor, tt.now))
		})
	}
}

func TestCancellationEligible(t *testing.T) {
	anchor := date("2025-06-10")

	tests := []struct {
		name     string
		now      time.Time
		eligible bool
		days     int
	}{
		{
			name:     "три дня до заезда - можно",
			now:      date("2025-06-07"),
			eligible: true,
			days:     3,
		},
		{
			name:     "ровно два дня - ещё можно",
			now:      date("2025-06-08"),
			eligible: true,
			days:     2,
		},
		{
			name:     "поздний вечер за два дня - всё ещё можно",
			now:      time.Date(2025, 6, 8, 23, 0, 0, 0, time.UTC),
			eligible: true,
			days:     2,
		},
		{
			name:     "один день - уже нельзя",
			now:      date("2025-06-09"),
			eligible: false,
			days:     1,
		},
		{
			name:     "день заезда - нельзя",
			now:      date("2025-06-10"),
			eligible: false,
			days:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, days := CancellationEligible(anchor, tt.now)
			assert.Equal(t, tt.eligible, eligible)
			assert.Equal(t, tt.days, days)
		})
	}
}
