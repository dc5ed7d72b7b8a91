package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		limit    int
		lastPage int
	}{
		{name: "empty result set", total: 0, page: 1, limit: 10, lastPage: 0},
		{name: "exact multiple", total: 20, page: 1, limit: 10, lastPage: 2},
		{name: "partial last page", total: 25, page: 3, limit: 10, lastPage: 3},
		{name: "single item", total: 1, page: 1, limit: 10, lastPage: 1},
		{name: "limit of one", total: 5, page: 2, limit: 1, lastPage: 5},
		{name: "zero limit guards division", total: 10, page: 1, limit: 0, lastPage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := response.NewPaginationMeta(tt.total, tt.page, tt.limit)

			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.lastPage, meta.LastPage)
		})
	}
}

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("bare payload without meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Success(c, http.StatusOK, gin.H{"message": "ok"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
	})

	t.Run("list payload wrapped with meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		meta := response.NewPaginationMeta(25, 2, 10)
		response.Success(c, http.StatusOK, []string{"a", "b"}, &meta)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":["a","b"],"meta":{"total":25,"page":2,"lastPage":3}}`, w.Body.String())
	})
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("without details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"Employee not found"}}`, w.Body.String())
	})

	t.Run("with field details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		details := []map[string]string{{"field": "salary", "message": "Salary must be greater than 0"}}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "One or more fields are invalid", details)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"salary"`)
	})
}
