package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"hanzidrill/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens     *security.SessionTokens
	passphrase *security.PassphraseChecker
	limiter    *security.LoginLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.SessionTokens, passphrase *security.PassphraseChecker, limiter *security.LoginLimiter) *Middleware {
	return &Middleware{
		tokens:     tokens,
		passphrase: passphrase,
		limiter:    limiter,
	}
}

// RequireAuth is middleware that requires a valid session token. With no
// passphrase configured the gate is open and requests pass straight
// through.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.passphrase.Enabled() {
			next(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		sessionID, err := m.tokens.Verify(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit throttles a handler per client address. Used on the login
// route so the passphrase cannot be brute-forced.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.ClientIP(r)
		if !m.limiter.Allow(ip) {
			log.Printf("Rate limit exceeded for %s on %s", ip, r.URL.Path)
			http.Error(w, "Too many attempts, try again later", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetSessionFromContext retrieves the session ID from the request context.
// An open gate carries no session, so an empty string is a valid result.
func GetSessionFromContext(ctx context.Context) string {
	sessionID, ok := ctx.Value(SessionContextKey).(string)
	if !ok {
		return ""
	}
	return sessionID
}
