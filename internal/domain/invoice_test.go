package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name        string
		basePrice   float64
		charges     []ExtraCharge
		wantTotal   float64
		wantClamped bool
	}{
		{
			name:      "без начислений итог равен базовой цене",
			basePrice: 200,
			wantTotal: 200,
		},
		{
			name:      "начисления суммируются",
			basePrice: 200,
			charges: []ExtraCharge{
				{Description: "мини-бар", Amount: 15},
				{Description: "поздний выезд", Amount: 30},
			},
			wantTotal: 245,
		},
		{
			name:      "отрицательное начисление уменьшает итог",
			basePrice: 200,
			charges: []ExtraCharge{
				{Description: "компенсация за шум", Amount: -50},
			},
			wantTotal: 150,
		},
		{
			name:      "итог в минусе ограничивается нулём",
			basePrice: 100,
			charges: []ExtraCharge{
				{Description: "компенсация", Amount: -150},
			},
			wantTotal:   0,
			wantClamped: true,
		},
		{
			name:      "ровно ноль не считается ограничением",
			basePrice: 100,
			charges: []ExtraCharge{
				{Description: "компенсация", Amount: -100},
			},
			wantTotal:   0,
			wantClamped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, clamped := Settle(tt.basePrice, tt.charges)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantClamped, clamped)
		})
	}
}
