package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(max int, window time.Duration) (*LoginLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLoginLimiter(max, window)
	l.now = clock.now
	return l, clock
}

// attempt is one failed login: it checks the limit and, when allowed,
// records the failure.
func attempt(l *LoginLimiter, ip string) bool {
	if !l.Check(ip) {
		return false
	}
	l.Record(ip)
	return true
}

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter, _ := newTestLimiter(2, time.Minute)
	ip := "203.0.113.10"

	if !attempt(limiter, ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if !attempt(limiter, ip) {
		t.Fatalf("expected second attempt to be allowed")
	}
	if attempt(limiter, ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	limiter, clock := newTestLimiter(1, time.Minute)
	ip := "203.0.113.20"

	if !attempt(limiter, ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if attempt(limiter, ip) {
		t.Fatalf("expected second attempt to be blocked")
	}

	clock.t = clock.t.Add(61 * time.Second)
	if !attempt(limiter, ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)

	if !attempt(limiter, "203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !attempt(limiter, "203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if attempt(limiter, "203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestLoginLimiterCountsOnlyRecordedFailures(t *testing.T) {
	limiter, _ := newTestLimiter(2, time.Minute)
	ip := "203.0.113.50"

	// successful logins are checked but never recorded
	for range 5 {
		if !limiter.Check(ip) {
			t.Fatalf("expected successful logins not to use up attempts")
		}
	}

	limiter.Record(ip)
	if !limiter.Check(ip) {
		t.Fatalf("expected one failure to stay below the limit")
	}
	limiter.Record(ip)
	if limiter.Check(ip) {
		t.Fatalf("expected ip to be blocked after two failures")
	}
}

func TestLoginLimiterPrune(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute)
	attempt(limiter, "203.0.113.40")

	clock.t = clock.t.Add(2 * time.Minute)
	limiter.prune()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.attempts) != 0 {
		t.Errorf("expected idle entries to be pruned, got %v", limiter.attempts)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.7:5123", nil, "10.0.0.7"},
		{"forwarded for", "127.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "203.0.113.9"},
		{"real ip", "127.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.4"}, "198.51.100.4"},
		{"no port", "10.0.0.8", nil, "10.0.0.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
