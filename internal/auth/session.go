// Package auth implements password-based admin sessions. A successful login
// issues an opaque token held in an in-memory table with a TTL; sessions do
// not survive a restart, which is acceptable for a single-admin tool.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionCookie is the cookie name the admin UI stores the token under.
const SessionCookie = "admin_session"

// ErrBadPassword is returned on a failed login attempt.
var ErrBadPassword = errors.New("auth: invalid password")

// Manager issues and validates admin session tokens.
type Manager struct {
	password string
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time // token → expiry
}

// NewManager creates a session manager. password is the shared admin
// password; ttl bounds session lifetime.
func NewManager(password string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Manager{
		password: password,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]time.Time),
	}
}

// SetClock overrides the time source. Test hook.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Login verifies the password and returns a fresh session token.
func (m *Manager) Login(password string) (string, error) {
	if m.password == "" {
		return "", ErrBadPassword
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", ErrBadPassword
	}

	token := uuid.NewString()
	m.mu.Lock()
	m.prune()
	m.sessions[token] = m.now().Add(m.ttl)
	m.mu.Unlock()
	return token, nil
}

// Validate reports whether token belongs to a live session.
func (m *Manager) Validate(token string) bool {
	if token == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.sessions[token]
	if !ok {
		return false
	}
	if m.now().After(expiry) {
		delete(m.sessions, token)
		return false
	}
	return true
}

// Logout revokes a session token.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// prune drops expired sessions. Caller holds the lock.
func (m *Manager) prune() {
	now := m.now()
	for token, expiry := range m.sessions {
		if now.After(expiry) {
			delete(m.sessions, token)
		}
	}
}
