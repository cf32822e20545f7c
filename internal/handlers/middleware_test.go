package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hanzidrill/internal/security"
)

func authTestMiddleware(passphrase string) (*Middleware, *security.SessionTokens) {
	tokens := security.NewSessionTokens("test-secret", time.Hour)
	checker := security.NewPassphraseChecker(passphrase, "")
	limiter := security.NewLoginLimiter(2, time.Minute)
	return NewMiddleware(tokens, checker, limiter), tokens
}

func TestRequireAuthRedirectsWithoutCookie(t *testing.T) {
	mw, _ := authTestMiddleware("secret")

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("GET", "/dashboard", nil))

	if called {
		t.Error("Handler ran without a session")
	}
	if recorder.Code != http.StatusSeeOther {
		t.Errorf("Expected redirect status, got %d", recorder.Code)
	}
	if loc := recorder.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	mw, tokens := authTestMiddleware("secret")

	token, id, err := tokens.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	var gotSession string
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotSession = GetSessionFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	handler(httptest.NewRecorder(), req)

	if gotSession != id {
		t.Errorf("Session in context = %q, want %q", gotSession, id)
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	mw, _ := authTestMiddleware("secret")

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	recorder := httptest.NewRecorder()
	handler(recorder, req)

	if called {
		t.Error("Handler ran with a forged token")
	}
	if recorder.Code != http.StatusSeeOther {
		t.Errorf("Expected redirect status, got %d", recorder.Code)
	}
}

func TestRateLimitBlocksRepeatedAttempts(t *testing.T) {
	mw, _ := authTestMiddleware("secret") // limiter allows 2 per minute

	calls := 0
	handler := mw.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = httptest.NewRecorder()
		handler(last, req)
	}

	if calls != 2 {
		t.Errorf("Handler ran %d times, want 2", calls)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status %d, got %d", http.StatusTooManyRequests, last.Code)
	}

	// A different client is not affected
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	if recorder.Code == http.StatusTooManyRequests {
		t.Error("Second client should have its own bucket")
	}
}

func TestRequireAuthOpenGate(t *testing.T) {
	mw, _ := authTestMiddleware("") // no passphrase configured

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/dashboard", nil))
	if !called {
		t.Error("Expected request to pass straight through an open gate")
	}
}
