package internal

import (
	"strings"
	"testing"

	"github.com/giralt/sitecms/internal/gallerystore"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Password: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_PasswordModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "password", Password: "hunter2"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("password mode with password should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("password mode should be enabled")
	}
}

func TestAuthConfig_PasswordModeEmptyPassword(t *testing.T) {
	cfg := AuthConfig{Mode: "password", Password: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("password mode with empty password should fail")
	}
	if !strings.Contains(err.Error(), "password is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Password: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestGalleryConfig_ModeDefaultsToFile(t *testing.T) {
	cfg := GalleryConfig{DataPath: "data/gallery-data.json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.StoreMode() != gallerystore.ModeFile {
		t.Errorf("mode = %q, want file default", cfg.Mode)
	}
}

func TestGalleryConfig_InvalidMode(t *testing.T) {
	cfg := GalleryConfig{DataPath: "data/gallery-data.json", Mode: "cloud"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestGitHubConfig_RepoFormat(t *testing.T) {
	cfg := GitHubConfig{Repo: "giralt/site"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("owner/name repo should pass: %v", err)
	}
	if cfg.Branch != "main" {
		t.Errorf("branch = %q, want main default", cfg.Branch)
	}

	bad := GitHubConfig{Repo: "no-slash"}
	if err := bad.Validate(); err == nil {
		t.Fatal("repo without owner/name should fail")
	}

	// Empty repo means commits are disabled, not a config error.
	empty := GitHubConfig{}
	if err := empty.Validate(); err != nil {
		t.Fatalf("empty repo should pass: %v", err)
	}
}

func TestSMTPConfig_UnconfiguredSkipsValidation(t *testing.T) {
	cfg := SMTPConfig{}
	if cfg.Configured() {
		t.Error("empty SMTP config should not report configured")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unconfigured SMTP should pass: %v", err)
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "password"
	cfg.Auth.Password = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
