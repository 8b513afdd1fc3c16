package utils

import (
	"testing"
	"time"

	"github.com/minhtran-dev/vietshop/models"
	"github.com/stretchr/testify/assert"
)

func TestVoucherDiscount(t *testing.T) {
	tests := []struct {
		name     string
		voucher  models.Voucher
		subtotal float64
		want     float64
	}{
		{
			name:     "percent voucher",
			voucher:  models.Voucher{Type: models.VoucherTypePercent, Value: 10},
			subtotal: 300000,
			want:     30000,
		},
		{
			name:     "percent voucher capped at max discount",
			voucher:  models.Voucher{Type: models.VoucherTypePercent, Value: 20, MaxDiscount: 50000},
			subtotal: 600000,
			want:     50000,
		},
		{
			name:     "percent voucher without cap",
			voucher:  models.Voucher{Type: models.VoucherTypePercent, Value: 20},
			subtotal: 600000,
			want:     120000,
		},
		{
			name:     "fixed voucher",
			voucher:  models.Voucher{Type: models.VoucherTypeFixed, Value: 40000},
			subtotal: 300000,
			want:     40000,
		},
		{
			name:     "fixed voucher capped at subtotal",
			voucher:  models.Voucher{Type: models.VoucherTypeFixed, Value: 100000},
			subtotal: 70000,
			want:     70000,
		},
		{
			name:     "fractional discount floored",
			voucher:  models.Voucher{Type: models.VoucherTypePercent, Value: 15},
			subtotal: 99999,
			want:     14999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VoucherDiscount(&tt.voucher, tt.subtotal)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckVoucherEligibility(t *testing.T) {
	now := time.Now()
	base := models.Voucher{
		ID:      1,
		Code:    "SUMMER10",
		Type:    models.VoucherTypePercent,
		Value:   10,
		StartAt: now.Add(-time.Hour),
		EndAt:   now.Add(time.Hour),
		Active:  true,
	}

	t.Run("eligible voucher", func(t *testing.T) {
		v := base
		assert.NoError(t, CheckVoucherEligibility(nil, &v, 0, 100000))
	})

	t.Run("inactive voucher", func(t *testing.T) {
		v := base
		v.Active = false
		assert.ErrorIs(t, CheckVoucherEligibility(nil, &v, 0, 100000), ErrVoucherInactive)
	})

	t.Run("voucher not started", func(t *testing.T) {
		v := base
		v.StartAt = now.Add(time.Hour)
		v.EndAt = now.Add(2 * time.Hour)
		assert.ErrorIs(t, CheckVoucherEligibility(nil, &v, 0, 100000), ErrVoucherNotStarted)
	})

	t.Run("expired voucher", func(t *testing.T) {
		v := base
		v.StartAt = now.Add(-2 * time.Hour)
		v.EndAt = now.Add(-time.Hour)
		assert.ErrorIs(t, CheckVoucherEligibility(nil, &v, 0, 100000), ErrVoucherExpired)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		v := base
		v.UsageLimit = 5
		v.UsedCount = 5
		assert.ErrorIs(t, CheckVoucherEligibility(nil, &v, 0, 100000), ErrVoucherExhausted)
	})

	t.Run("usage limit not reached", func(t *testing.T) {
		v := base
		v.UsageLimit = 5
		v.UsedCount = 4
		assert.NoError(t, CheckVoucherEligibility(nil, &v, 0, 100000))
	})

	t.Run("subtotal below minimum", func(t *testing.T) {
		v := base
		v.MinOrderValue = 200000
		assert.ErrorIs(t, CheckVoucherEligibility(nil, &v, 0, 100000), ErrVoucherMinOrder)
	})

	t.Run("subtotal at minimum", func(t *testing.T) {
		v := base
		v.MinOrderValue = 200000
		assert.NoError(t, CheckVoucherEligibility(nil, &v, 0, 200000))
	})
}
