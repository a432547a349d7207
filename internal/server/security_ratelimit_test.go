package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("POST", "/api/v1/roll", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < DetectorMaxRequests; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest("POST", "/api/v1/roll", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)

	requests, _ := detector.Activity(ip)
	assert.Equal(t, DetectorMaxRequests+1, requests)
}

func TestSuspiciousActivityDetector_WindowRollover(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	clock := detector.windowStart
	detector.now = func() time.Time { return clock }

	for i := 0; i <= DetectorMaxRequests; i++ {
		detector.RecordRequest("10.1.1.1")
	}
	detector.RecordFailedAuth("10.1.1.1")
	require.False(t, detector.RecordRequest("10.1.1.1"))

	clock = clock.Add(DetectorWindow + time.Second)
	assert.True(t, detector.RecordRequest("10.1.1.1"))

	requests, failed := detector.Activity("10.1.1.1")
	assert.Equal(t, 1, requests)
	assert.Zero(t, failed)
}
