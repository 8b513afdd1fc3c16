package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFee(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"below threshold", 480000, 30000},
		{"above threshold", 520000, 0},
		{"at threshold", 500000, 0},
		{"just below threshold", 499999, 30000},
		{"empty order", 0, 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShippingFee(tt.subtotal))
		})
	}
}
