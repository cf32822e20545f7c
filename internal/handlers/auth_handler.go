package handlers

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"hanzidrill/internal/security"
)

// AuthHandler handles the passphrase gate
type AuthHandler struct {
	passphrase *security.PassphraseChecker
	tokens     *security.SessionTokens
	templates  *template.Template
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(passphrase *security.PassphraseChecker, tokens *security.SessionTokens, templates *template.Template) *AuthHandler {
	return &AuthHandler{
		passphrase: passphrase,
		tokens:     tokens,
		templates:  templates,
	}
}

// Home redirects to the dashboard, or to login when no session exists
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.loggedIn(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.renderLogin(w, LoginViewData{Title: "Login - HanziDrill"})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if !h.passphrase.Check(r.FormValue("passphrase")) {
		h.renderLogin(w, LoginViewData{
			Title: "Login - HanziDrill",
			Error: "Wrong passphrase",
		})
		return
	}

	token, _, err := h.tokens.Issue(time.Now())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error issuing session token", err)
		return
	}

	expires := time.Now().Add(h.tokens.Duration())
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, token, expires))

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) loggedIn(r *http.Request) bool {
	if !h.passphrase.Enabled() {
		return true
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	_, err = h.tokens.Verify(cookie.Value)
	return err == nil
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, data LoginViewData) {
	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		log.Printf("Error rendering login template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
