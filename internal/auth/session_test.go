package auth

import (
	"testing"
	"time"
)

func TestLoginAndValidate(t *testing.T) {
	m := NewManager("hunter2", time.Hour)

	token, err := m.Login("hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !m.Validate(token) {
		t.Error("fresh token should validate")
	}

	other, err := m.Login("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if other == token {
		t.Error("tokens must be unique per login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	m := NewManager("hunter2", time.Hour)
	if _, err := m.Login("wrong"); err != ErrBadPassword {
		t.Errorf("err = %v, want ErrBadPassword", err)
	}
}

func TestLoginEmptyConfiguredPassword(t *testing.T) {
	// An unset admin password must never allow login, even with "".
	m := NewManager("", time.Hour)
	if _, err := m.Login(""); err != ErrBadPassword {
		t.Errorf("err = %v, want ErrBadPassword", err)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	m := NewManager("hunter2", time.Hour)
	if m.Validate("") || m.Validate("not-a-token") {
		t.Error("unknown tokens must not validate")
	}
}

func TestSessionExpiry(t *testing.T) {
	m := NewManager("hunter2", time.Hour)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return base })

	token, err := m.Login("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Validate(token) {
		t.Fatal("token should be live")
	}

	m.SetClock(func() time.Time { return base.Add(2 * time.Hour) })
	if m.Validate(token) {
		t.Error("expired token should not validate")
	}
	// Expired entries are dropped on the failed validation.
	if m.Validate(token) {
		t.Error("expired token must stay invalid")
	}
}

func TestLogout(t *testing.T) {
	m := NewManager("hunter2", time.Hour)
	token, err := m.Login("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	m.Logout(token)
	if m.Validate(token) {
		t.Error("revoked token should not validate")
	}
}

func TestDefaultTTL(t *testing.T) {
	m := NewManager("x", 0)
	if m.TTL() != 7*24*time.Hour {
		t.Errorf("ttl = %v, want 7 days default", m.TTL())
	}
}
