package internal

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/giralt/sitecms/internal/gallerystore"
	"github.com/giralt/sitecms/pkg/config"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModePassword = "password"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Gallery GalleryConfig     `yaml:"gallery"`
	Blog    BlogConfig        `yaml:"blog"`
	GitHub  GitHubConfig      `yaml:"github"`
	Auth    AuthConfig        `yaml:"auth"`
	SMTP    SMTPConfig        `yaml:"smtp"`
	Assets  AssetsConfig      `yaml:"assets"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Gallery.Validate(); err != nil {
		return err
	}
	if err := c.Blog.Validate(); err != nil {
		return err
	}
	if err := c.GitHub.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.SMTP.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port          int  `yaml:"port"`
	SecureCookies bool `yaml:"secure_cookies"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// GalleryConfig holds the gallery document location and write mode.
//
// Mode selects the write backend:
//   - "file" (default): the JSON file on disk is canonical.
//   - "memory": for read-only filesystems; writes live in a process-wide
//     cache seeded once from the bundled data file, and only become
//     permanent through the remote committer.
type GalleryConfig struct {
	DataPath string `yaml:"data_path"`
	Mode     string `yaml:"mode"`
}

// Validate validates the gallery configuration.
func (c *GalleryConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = string(gallerystore.ModeFile)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.DataPath, validation.Required),
		validation.Field(&c.Mode, validation.Required,
			validation.In(string(gallerystore.ModeFile), string(gallerystore.ModeMemory))),
	)
}

// StoreMode returns the validated mode as a store type.
func (c *GalleryConfig) StoreMode() gallerystore.Mode {
	return gallerystore.Mode(c.Mode)
}

// BlogConfig holds the blog content directory and index database path.
type BlogConfig struct {
	ContentDir string `yaml:"content_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Validate validates the blog configuration.
func (c *BlogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.SQLitePath, validation.Required),
	)
}

// GitHubConfig identifies the remote repository the gallery document is
// committed to. An empty repo or token disables remote commits; every
// admin mutation then reports commitSuccess=false.
type GitHubConfig struct {
	Repo     string `yaml:"repo"` // owner/name
	Branch   string `yaml:"branch"`
	Token    string `yaml:"token"`
	FilePath string `yaml:"file_path"`
}

// Validate validates the GitHub configuration.
func (c *GitHubConfig) Validate() error {
	if c.Branch == "" {
		c.Branch = "main"
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Repo, validation.Match(repoRe).Error("must be owner/name")),
	)
}

// AuthConfig holds admin authentication configuration.
//
// Mode controls how the admin surface is protected:
//   - "disabled" (default): no authentication, suitable for local dev.
//   - "password": session login with the shared admin password.
type AuthConfig struct {
	Mode       string          `yaml:"mode"`
	Password   string          `yaml:"password"`
	SessionTTL config.Duration `yaml:"session_ttl"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModePassword)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModePassword && c.Password == "" {
		return fmt.Errorf("auth: mode is %q but password is empty", AuthModePassword)
	}
	return nil
}

// AuthEnabled returns true when admin authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModePassword
}

// AssetsConfig points at the public assets directory image uploads are
// written to. An empty dir disables the upload endpoint.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// SMTPConfig holds the contact-form relay configuration. All fields empty
// means the relay is disabled.
type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
	ToEmail   string `yaml:"to_email"`
}

// Configured reports whether the relay can be constructed.
func (c *SMTPConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.FromEmail != "" && c.ToEmail != ""
}

// Validate validates the SMTP configuration.
func (c *SMTPConfig) Validate() error {
	if !c.Configured() {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// repoRe matches "owner/name" repository identifiers.
var repoRe = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Gallery: GalleryConfig{
			DataPath: "data/gallery-data.json",
			Mode:     string(gallerystore.ModeFile),
		},
		Blog: BlogConfig{
			ContentDir: "content/blog",
			SQLitePath: "./sitecms.db",
		},
		GitHub: GitHubConfig{
			Branch:   "main",
			FilePath: "data/gallery-data.json",
		},
		Auth: AuthConfig{
			Mode:       AuthModeDisabled,
			SessionTTL: config.Duration(7 * 24 * time.Hour),
		},
		SMTP: SMTPConfig{
			Port:     587,
			FromName: "Giralt Enterprises",
		},
		Assets: AssetsConfig{
			Dir: "public",
		},
	}
}
