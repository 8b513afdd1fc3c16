package utils

import (
	"testing"

	"github.com/minhtran-dev/vietshop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestCalculateFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		saleType string
		value    float64
		want     float64
	}{
		{"percent sale", 200000, models.SaleTypePercent, 25, 150000},
		{"full percent sale", 200000, models.SaleTypePercent, 100, 0},
		{"fixed sale", 200000, models.SaleTypeFixed, 50000, 150000},
		{"fixed sale exceeding price", 200000, models.SaleTypeFixed, 250000, 0},
		{"fixed sale equal to price", 200000, models.SaleTypeFixed, 200000, 0},
		{"no sale type", 200000, "", 50, 200000},
		{"unknown sale type", 200000, "bogus", 50, 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateFinalPrice(tt.price, tt.saleType, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

// FinalUnitPrice must run its sale lookup on the session it is handed,
// so transactional callers price against their own snapshot.
func TestFinalUnitPriceUsesProvidedSession(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	product := &models.Product{Model: gorm.Model{ID: 5}, Price: 250000}
	assert.Equal(t, 250000.0, FinalUnitPrice(db, product))
}
