package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestNewPagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := NewPagination(paginationContext(t, ""))
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultPaginationLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		p := NewPagination(paginationContext(t, "page=3&limit=20"))
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 20, p.Limit)
		assert.Equal(t, 40, p.Offset)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		p := NewPagination(paginationContext(t, "limit=1000"))
		assert.Equal(t, MaxPaginationLimit, p.Limit)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		p := NewPagination(paginationContext(t, "page=abc&limit=-5"))
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultPaginationLimit, p.Limit)
	})
}

func TestPaginationSetTotal(t *testing.T) {
	p := &Pagination{Page: 1, Limit: 10}
	p.SetTotal(25)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.LastPage)

	p.SetTotal(0)
	assert.Equal(t, 0, p.LastPage)
}
