package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiter_AllowWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}
}

func TestRateLimiter_PerIPIsolation(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first ip should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second ip has its own bucket")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(1, 1)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/leads", nil)
	req.Header.Set("X-Real-Ip", "203.0.113.9")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
}
