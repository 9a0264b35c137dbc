package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/eclesiar-analyzer/internal/logger"
)

func TestHealth_DegradedWhenCheckFails(t *testing.T) {
	s := NewServer(0, "test", logger.New(io.Discard, logger.LevelInfo, "test", nil))
	s.RegisterCheck("store", PingCheck(func(context.Context) error { return nil }))
	s.RegisterCheck("last_run", FreshnessCheck(time.Minute, func() time.Time { return time.Time{} }))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.True(t, status.Checks["store"].Healthy)
	assert.False(t, status.Checks["last_run"].Healthy)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth_OKAndLive(t *testing.T) {
	s := NewServer(0, "v1", logger.New(io.Discard, logger.LevelInfo, "test", nil))
	s.RegisterCheck("last_run", FreshnessCheck(time.Minute, func() time.Time { return time.Now() }))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, "alive", rec.Body.String())
}

func TestPingCheck_ReportsError(t *testing.T) {
	ok, msg := PingCheck(func(context.Context) error { return errors.New("database is locked") })(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "database is locked", msg)
}
