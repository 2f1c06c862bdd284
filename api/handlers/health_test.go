package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 HealthHandler 测试
// =============================================================================

func TestHealthHandler_HandleHealth(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
}

func TestHealthHandler_HandleReady(t *testing.T) {
	t.Parallel()

	t.Run("all checks pass", func(t *testing.T) {
		h := NewHealthHandler(zap.NewNop())
		h.RegisterCheck(NewProviderHealthCheck("gemini", func(ctx context.Context) error {
			return nil
		}))

		rec := httptest.NewRecorder()
		h.HandleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "pass", status.Checks["gemini"].Status)
	})

	t.Run("failing check reports unhealthy", func(t *testing.T) {
		h := NewHealthHandler(zap.NewNop())
		h.RegisterCheck(NewProviderHealthCheck("gemini", func(ctx context.Context) error {
			return errors.New("connection refused")
		}))

		rec := httptest.NewRecorder()
		h.HandleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "unhealthy", status.Status)
		assert.Equal(t, "fail", status.Checks["gemini"].Status)
		assert.Contains(t, status.Checks["gemini"].Message, "connection refused")
	})
}

func TestHealthHandler_HandleVersion(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleVersion("1.0.0", "2026-01-01", "abcdef")(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var info map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "1.0.0", info["version"])
	assert.Equal(t, "abcdef", info["git_commit"])
}
