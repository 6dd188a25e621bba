package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/ecolux_api/internal/utils"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"validation", utils.Invalid("name", "name is required"), http.StatusBadRequest, "VALIDATION_ERROR", "name is required"},
		{"credentials", utils.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"},
		{"forbidden", utils.Forbidden("Customer access required"), http.StatusForbidden, "FORBIDDEN", "Customer access required"},
		{"not found", fmt.Errorf("load: %w", utils.NotFound("Quote not found")), http.StatusNotFound, "NOT_FOUND", "Quote not found"},
		{"bare not found", utils.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found"},
		{"conflict", utils.Conflict("An order already exists for this quote"), http.StatusConflict, "CONFLICT", "An order already exists for this quote"},
		{"unavailable", fmt.Errorf("moderate image: %w", utils.ErrUnavailable), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable"},
		{"internal", errors.New(`pq: relation "quotes" does not exist`), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
			c.Set("request_id", "abcd1234")

			handleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.msg, body["error"])
			assert.Equal(t, "abcd1234", body["request_id"])
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestPathID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	_, ok := pathID(c, "Address not found")
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Address not found", decode(t, w)["error"])
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	r := gin.New()
	var down bool
	r.GET("/", NewHealthHandler(pingFunc(func(context.Context) error {
		if down {
			return errors.New("connection refused")
		}
		return nil
	})).GetHealth)

	w := do(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])

	down = true
	w = do(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])
}
