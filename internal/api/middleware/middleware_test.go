package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"data":"ok"}`))
})

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantHeader string
	}{
		{"wildcard", []string{"*"}, "https://example.org", "*"},
		{"listed origin echoed", []string{"https://mhbaltimore.org"}, "https://mhbaltimore.org", "https://mhbaltimore.org"},
		{"unlisted origin", []string{"https://mhbaltimore.org"}, "https://evil.example", ""},
		{"no origin", []string{"https://mhbaltimore.org"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed)(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantHeader, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/api/navigator/responses", nil)
	req.Header.Set("Origin", "https://mhbaltimore.org")
	rec := httptest.NewRecorder()
	CORS([]string{"*"})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2, nil)
	handler := limiter.Middleware(okHandler)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
		req.RemoteAddr = ip + ":51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	rec := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"RATE_LIMITED","message":"rate limit exceeded, try again later"}}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(5, 5, nil)
	limiter.now = func() time.Time { return now }

	limiter.limiter("10.0.0.1")
	now = now.Add(limiterIdleTTL / 2)
	limiter.limiter("10.0.0.2")
	now = now.Add(limiterIdleTTL/2 + time.Second)
	limiter.sweep()

	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestRateLimiter_ClientIP(t *testing.T) {
	limiter := NewRateLimiter(1, 1, []string{"10.0.0.0/8", "192.0.2.1", "not-an-ip"})

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"direct peer", "198.51.100.4:4000", "", "198.51.100.4"},
		{"untrusted peer cannot spoof forwarded header", "198.51.100.4:4000", "203.0.113.9", "198.51.100.4"},
		{"trusted proxy forwards client", "10.1.2.3:4000", "203.0.113.9", "203.0.113.9"},
		{"nearest untrusted hop wins", "10.1.2.3:4000", "1.2.3.4, 203.0.113.9, 192.0.2.1", "203.0.113.9"},
		{"trusted proxy without header", "192.0.2.1:4000", "", "192.0.2.1"},
		{"chain of trusted hops only", "10.1.2.3:4000", "10.9.9.9", "10.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, limiter.clientIP(req))
		})
	}
}

func TestRateLimiter_RotatingForwardedHeaderDoesNotEvadeLimit(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, nil)
	handler := limiter.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for _, fwd := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
		req.RemoteAddr = "198.51.100.4:4000"
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.Len(t, limiter.visitors, 1)
}

func TestCompression(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()
	Compression(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, `{"data":"ok"}`, string(body))

	plain := httptest.NewRecorder()
	Compression(okHandler).ServeHTTP(plain, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	assert.Empty(t, plain.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"data":"ok"}`, plain.Body.String())
}

func TestLoggingAndObservabilityPassThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /api/results", okHandler)

	handler := Observability(nil)(Logging(mux))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"data":"ok"}`, rec.Body.String())
}
