package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sampleConfig struct {
	Name    string   `yaml:"name"`
	Token   string   `yaml:"token"`
	Timeout Duration `yaml:"timeout"`

	validated bool
}

func (c *sampleConfig) Validate() error {
	c.validated = true
	return nil
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_TOKEN", "s3cret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "name: sitecms\ntoken: ${SAMPLE_TOKEN}\ntimeout: 90s\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg sampleConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Token != "s3cret" {
		t.Errorf("token = %q, want env expanded", cfg.Token)
	}
	if cfg.Timeout.Std() != 90*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout.Std())
	}
	if !cfg.validated {
		t.Error("Validate was not called")
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg sampleConfig
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var cfg sampleConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoadIfExistsMissingFileValidatesDefaults(t *testing.T) {
	var cfg sampleConfig
	cfg.Name = "defaulted"
	if err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err != nil {
		t.Fatalf("missing file should be tolerated: %v", err)
	}
	if cfg.Name != "defaulted" {
		t.Error("defaults must be left untouched")
	}
	if !cfg.validated {
		t.Error("Validate must still run without a file")
	}
}
