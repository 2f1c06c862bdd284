package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := SecurityHeaders()(inner)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
}

func TestSecurityHeaders_ChainedWithOtherMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	handler := Chain(inner, SecurityHeaders(), RequestID())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	// SecurityHeaders should be present
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	// RequestID should also be present
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_PreservesClientID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-client", RequestIDFromContext(r.Context()))
	})

	handler := RequestID()(inner)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("X-Request-ID", "req-client")
	handler.ServeHTTP(w, r)

	assert.Equal(t, "req-client", w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin", func(t *testing.T) {
		handler := CORS([]string{"https://app.example"})(inner)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Origin", "https://app.example")
		handler.ServeHTTP(w, r)

		assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		handler := CORS([]string{"*"})(inner)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Origin", "https://other.example")
		handler.ServeHTTP(w, r)

		assert.Equal(t, "https://other.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight from unknown origin is rejected", func(t *testing.T) {
		handler := CORS([]string{"https://app.example"})(inner)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/", nil)
		r.Header.Set("Origin", "https://evil.example")
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiter_Blocks(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1 rps，突发 1：第二个请求必须被拒绝
	handler := RateLimiter(ctx, 1, 1, zap.NewNop())(inner)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, r)
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, r)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/api/v1/images/generate", normalizePath("/api/v1/images/generate"))
	assert.Equal(t, "/health", normalizePath("/health"))
	assert.Equal(t, "/operations/:id", normalizePath("/operations/1234567890"))
	assert.Equal(t, "/operations/:id",
		normalizePath("/operations/a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
}
