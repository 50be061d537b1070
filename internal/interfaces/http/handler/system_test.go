package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeHealthChecker struct {
	err error
}

func (f *fakeHealthChecker) Ping() error {
	return f.err
}

type fakeStatsChecker struct {
	fakeHealthChecker
	stats sql.DBStats
}

func (f *fakeStatsChecker) Stats() (sql.DBStats, error) {
	return f.stats, nil
}

func TestNewSystemHandler(t *testing.T) {
	h := NewSystemHandler(nil)
	assert.NotNil(t, h)
	assert.False(t, h.startTime.IsZero())
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/system/info", nil)

	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w.Body.Bytes())
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Print Market API", data["name"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])
	assert.NotContains(t, data, "db_pool")
}

func TestSystemHandler_GetSystemInfo_PoolStats(t *testing.T) {
	h := NewSystemHandler(&fakeStatsChecker{
		stats: sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/system/info", nil)

	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w.Body.Bytes())
	pool := resp.Data.(map[string]interface{})["db_pool"].(map[string]interface{})
	assert.Equal(t, float64(4), pool["open_connections"])
	assert.Equal(t, float64(1), pool["in_use"])
	assert.Equal(t, float64(3), pool["idle"])
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/system/ping", nil)

	h.Ping(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w.Body.Bytes())
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pong", data["message"])
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy when database responds", func(t *testing.T) {
		h := NewSystemHandler(&fakeHealthChecker{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w.Body.Bytes())
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "ok", data["status"])
	})

	t.Run("degraded when database is unreachable", func(t *testing.T) {
		h := NewSystemHandler(&fakeHealthChecker{err: errors.New("connection refused")})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeResponse(t, w.Body.Bytes())
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "degraded", data["status"])
		assert.Equal(t, "unreachable", data["database"])
	})
}
