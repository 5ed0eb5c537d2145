package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giralt/sitecms/internal/auth"
)

// AuthHandler holds login/logout handlers.
type AuthHandler struct {
	sessions *auth.Manager
	secure   bool // mark session cookies Secure (production TLS)
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *auth.Manager, secureCookies bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, secure: secureCookies}
}

// Login handles POST /api/admin/login. On success it sets the session
// cookie and also returns the token for header-based API clients.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	token, err := h.sessions.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadPassword) {
			writeJSON(w, http.StatusUnauthorized, errorBody("invalid password"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		h.sessions.Logout(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
