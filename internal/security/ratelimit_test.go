package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func testLimiter(rate int, window time.Duration) (*LoginLimiter, *time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := &LoginLimiter{
		clients: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     func() time.Time { return now },
	}
	return l, &now
}

func TestLoginLimiterExhaustsBucket(t *testing.T) {
	l, _ := testLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("Attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("Fourth attempt within the window should be blocked")
	}
}

func TestLoginLimiterRefillsAfterWindow(t *testing.T) {
	l, now := testLimiter(1, time.Minute)

	if !l.Allow("10.0.0.1") {
		t.Fatal("First attempt should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("Second attempt within the window should be blocked")
	}

	*now = now.Add(time.Minute)
	if !l.Allow("10.0.0.1") {
		t.Error("Attempt after the window should be allowed again")
	}
}

func TestLoginLimiterTracksClientsSeparately(t *testing.T) {
	l, _ := testLimiter(1, time.Minute)

	if !l.Allow("10.0.0.1") {
		t.Fatal("First client should be allowed")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("Second client should not share the first client's bucket")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "Remote address only",
			remoteAddr: "192.168.1.5:54321",
			want:       "192.168.1.5",
		},
		{
			name:       "X-Forwarded-For wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "X-Real-IP fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/login", nil)
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
