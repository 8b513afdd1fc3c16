package controllers

import (
	"strings"
	"testing"

	"github.com/minhtran-dev/vietshop/models"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderCode(t *testing.T) {
	code := newOrderCode()
	assert.True(t, strings.HasPrefix(code, "VS-"))
	assert.Equal(t, strings.ToUpper(code), code)

	// Codes must not collide across calls
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c := newOrderCode()
		assert.False(t, seen[c], "duplicate order code %s", c)
		seen[c] = true
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, isValidTransition(models.OrderStatusPending, models.OrderStatusConfirmed))
	assert.True(t, isValidTransition(models.OrderStatusPending, models.OrderStatusCancelled))
	assert.True(t, isValidTransition(models.OrderStatusConfirmed, models.OrderStatusShipping))
	assert.True(t, isValidTransition(models.OrderStatusConfirmed, models.OrderStatusCancelled))
	assert.True(t, isValidTransition(models.OrderStatusShipping, models.OrderStatusDelivered))

	assert.False(t, isValidTransition(models.OrderStatusPending, models.OrderStatusDelivered))
	assert.False(t, isValidTransition(models.OrderStatusShipping, models.OrderStatusCancelled))
	assert.False(t, isValidTransition(models.OrderStatusDelivered, models.OrderStatusShipping))
	assert.False(t, isValidTransition(models.OrderStatusCancelled, models.OrderStatusConfirmed))
	assert.False(t, isValidTransition(models.OrderStatusPending, models.OrderStatusPending))
}
