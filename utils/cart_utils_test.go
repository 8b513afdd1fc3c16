package utils

import (
	"testing"

	"github.com/minhtran-dev/vietshop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestMergeCartItems(t *testing.T) {
	t.Run("quantities sum for the same product", func(t *testing.T) {
		userItems := []models.CartItem{{ID: 1, CartID: 1, ProductID: 10, Quantity: 2}}
		anonItems := []models.CartItem{{ID: 2, CartID: 2, ProductID: 10, Quantity: 1}}

		merged := MergeCartItems(userItems, anonItems)
		require.Len(t, merged, 1)
		assert.Equal(t, 3, merged[0].Quantity)
		assert.Equal(t, uint(10), merged[0].ProductID)
	})

	t.Run("distinct products are kept apart", func(t *testing.T) {
		userItems := []models.CartItem{{ProductID: 10, Quantity: 2}}
		anonItems := []models.CartItem{{ProductID: 11, Quantity: 5}}

		merged := MergeCartItems(userItems, anonItems)
		assert.Len(t, merged, 2)
	})

	t.Run("same product with different variants stays separate", func(t *testing.T) {
		userItems := []models.CartItem{{ProductID: 10, VariantID: uintPtr(1), Quantity: 2}}
		anonItems := []models.CartItem{{ProductID: 10, VariantID: uintPtr(2), Quantity: 1}}

		merged := MergeCartItems(userItems, anonItems)
		assert.Len(t, merged, 2)
	})

	t.Run("same product and variant merges", func(t *testing.T) {
		userItems := []models.CartItem{{ProductID: 10, VariantID: uintPtr(1), Quantity: 2}}
		anonItems := []models.CartItem{{ProductID: 10, VariantID: uintPtr(1), Quantity: 4}}

		merged := MergeCartItems(userItems, anonItems)
		require.Len(t, merged, 1)
		assert.Equal(t, 6, merged[0].Quantity)
	})

	t.Run("empty anonymous cart is a no-op", func(t *testing.T) {
		userItems := []models.CartItem{{ProductID: 10, Quantity: 2}}

		merged := MergeCartItems(userItems, nil)
		require.Len(t, merged, 1)
		assert.Equal(t, 2, merged[0].Quantity)
	})

	t.Run("empty user cart takes anonymous lines", func(t *testing.T) {
		anonItems := []models.CartItem{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 1},
		}

		merged := MergeCartItems(nil, anonItems)
		assert.Len(t, merged, 2)
	})
}
