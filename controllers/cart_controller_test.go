package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPut, "/cart/items", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestUpdateCartItemRequestBinding(t *testing.T) {
	t.Run("zero quantity binds for the removal path", func(t *testing.T) {
		var req UpdateCartItemRequest
		err := jsonContext(t, `{"product_id":1,"quantity":0}`).ShouldBindJSON(&req)
		require.NoError(t, err)
		require.NotNil(t, req.Quantity)
		assert.Equal(t, 0, *req.Quantity)
	})

	t.Run("positive quantity binds", func(t *testing.T) {
		var req UpdateCartItemRequest
		err := jsonContext(t, `{"product_id":1,"quantity":3}`).ShouldBindJSON(&req)
		require.NoError(t, err)
		require.NotNil(t, req.Quantity)
		assert.Equal(t, 3, *req.Quantity)
	})

	t.Run("missing quantity is rejected", func(t *testing.T) {
		var req UpdateCartItemRequest
		err := jsonContext(t, `{"product_id":1}`).ShouldBindJSON(&req)
		assert.Error(t, err)
	})
}
