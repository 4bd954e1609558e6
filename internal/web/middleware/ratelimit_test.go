package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablebook/internal/config"

	"github.com/stretchr/testify/assert"
)

func newRateLimitedHandler(cfg config.RateLimitConfig) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rl := NewRateLimiterMiddleware(cfg, logger)
	return rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	h := newRateLimitedHandler(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 3})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/customers/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterBlocksOverBurst(t *testing.T) {
	h := newRateLimitedHandler(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1})

	req := httptest.NewRequest(http.MethodGet, "/customers/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	h := newRateLimitedHandler(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1})

	first := httptest.NewRequest(http.MethodGet, "/customers/", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/customers/", nil)
	second.RemoteAddr = "10.0.0.4:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	h := newRateLimitedHandler(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1})

	req := httptest.NewRequest(http.MethodGet, "/customers/", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestExtractIP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1}, logger)

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.168.1.10:5000",
			expected:   "192.168.1.10",
		},
		{
			name:       "x-forwarded-for takes first entry",
			remoteAddr: "192.168.1.10:5000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			expected:   "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "192.168.1.10:5000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			expected:   "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, rl.extractIP(req))
		})
	}
}
