package security

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// LoginLimiter throttles passphrase attempts per client address with a
// token bucket. Each client gets rate attempts per window; the bucket
// refills in full once a window has passed since the last refill.
type LoginLimiter struct {
	mu      sync.Mutex
	clients map[string]*bucket
	rate    int
	window  time.Duration
	now     func() time.Time
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastSeen   time.Time
}

// NewLoginLimiter creates a limiter allowing rate attempts per window
// and starts a background sweep of stale client entries.
func NewLoginLimiter(rate int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		clients: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     time.Now,
	}
	go l.sweep()
	return l
}

// Allow reports whether the client may make another attempt now
func (l *LoginLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[clientIP]
	if !ok {
		b = &bucket{tokens: l.rate, lastRefill: now}
		l.clients[clientIP] = b
	}
	b.lastSeen = now

	if now.Sub(b.lastRefill) >= l.window {
		b.tokens = l.rate
		b.lastRefill = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops clients that have been idle for more than two windows
func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := l.now().Add(-2 * l.window)
		for ip, b := range l.clients {
			if b.lastSeen.Before(cutoff) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client address from a request, preferring the
// proxy headers over the socket address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
