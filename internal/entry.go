// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/giralt/sitecms/internal/api"
	"github.com/giralt/sitecms/internal/auth"
	"github.com/giralt/sitecms/internal/blog"
	"github.com/giralt/sitecms/internal/blogindex"
	"github.com/giralt/sitecms/internal/email"
	"github.com/giralt/sitecms/internal/galleryservice"
	"github.com/giralt/sitecms/internal/gallerystore"
	"github.com/giralt/sitecms/internal/github"
	"github.com/giralt/sitecms/internal/mcpserver"
	"github.com/giralt/sitecms/internal/sse"
	"github.com/giralt/sitecms/internal/storage"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logOut := io.Writer(os.Stdout)
	if app.logOut != nil {
		logOut = app.logOut
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("gallery_data", cfg.Gallery.DataPath),
		slog.String("gallery_mode", cfg.Gallery.Mode),
		slog.String("content_dir", cfg.Blog.ContentDir),
		slog.String("sqlite_path", cfg.Blog.SQLitePath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure blog content directory exists.
	if err := os.MkdirAll(cfg.Blog.ContentDir, 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}

	// Gallery document store and remote committer.
	store := gallerystore.New(cfg.Gallery.DataPath, cfg.Gallery.StoreMode())
	committer := github.NewCommitter(store, github.CommitterConfig{
		Repo:     cfg.GitHub.Repo,
		Branch:   cfg.GitHub.Branch,
		Token:    cfg.GitHub.Token,
		FilePath: cfg.GitHub.FilePath,
	})
	if !committer.Configured() {
		logger.Warn("remote committer not configured, gallery mutations will report commitSuccess=false")
	}
	gallery := galleryservice.New(store, committer)

	// Blog content storage.
	content, err := storage.NewFS(cfg.Blog.ContentDir)
	if err != nil {
		return fmt.Errorf("init content storage: %w", err)
	}

	// Blog SQLite index.
	db, err := blogindex.Open(cfg.Blog.SQLitePath)
	if err != nil {
		return fmt.Errorf("init blog index: %w", err)
	}
	defer db.Close()

	// Run initial sync.
	if err := blog.Sync(db, content, logger); err != nil {
		logger.Warn("initial blog sync failed", slog.String("error", err.Error()))
	}

	blogSvc := blog.NewService(content, db)

	// Admin sessions.
	sessions := auth.NewManager(cfg.Auth.Password, cfg.Auth.SessionTTL.Std())

	// Contact-form relay, only when SMTP is configured.
	var mailer api.Mailer
	if cfg.SMTP.Configured() {
		mailer = email.NewClient(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User,
			cfg.SMTP.Password, cfg.SMTP.FromName, cfg.SMTP.FromEmail, cfg.SMTP.ToEmail)
	} else {
		logger.Warn("SMTP not configured, contact form disabled")
	}

	// Upload target, only when an assets directory is configured.
	var uploads storage.Provider
	if cfg.Assets.Dir != "" {
		if err := os.MkdirAll(cfg.Assets.Dir, 0o755); err != nil {
			return fmt.Errorf("create assets dir: %w", err)
		}
		fs, err := storage.NewFS(cfg.Assets.Dir)
		if err != nil {
			return fmt.Errorf("init assets storage: %w", err)
		}
		uploads = fs
	}

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	apiRouter := api.NewRouter(api.Deps{
		Gallery:       gallery,
		Blog:          blogSvc,
		Sessions:      sessions,
		AuthEnabled:   cfg.Auth.AuthEnabled(),
		SecureCookies: cfg.App.HTTP.SecureCookies,
		Mailer:        mailer,
		Uploads:       uploads,
		Broker:        broker,
	})

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start blog content watcher with SSE callback.
	g.Go(func() error {
		if err := blog.Watch(gCtx, db, content, cfg.Blog.ContentDir, logger, func(kind, slug string) {
			broker.PublishPostEvent(kind, slug)
		}); err != nil {
			logger.Warn("blog watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP server on stdio, sharing the same content and index
// configuration as the HTTP server.
func RunMCP(cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store := gallerystore.New(cfg.Gallery.DataPath, cfg.Gallery.StoreMode())
	committer := github.NewCommitter(store, github.CommitterConfig{
		Repo:     cfg.GitHub.Repo,
		Branch:   cfg.GitHub.Branch,
		Token:    cfg.GitHub.Token,
		FilePath: cfg.GitHub.FilePath,
	})
	gallery := galleryservice.New(store, committer)

	content, err := storage.NewFS(cfg.Blog.ContentDir)
	if err != nil {
		return fmt.Errorf("init content storage: %w", err)
	}

	db, err := blogindex.Open(cfg.Blog.SQLitePath)
	if err != nil {
		return fmt.Errorf("init blog index: %w", err)
	}
	defer db.Close()

	if err := blog.Sync(db, content, logger); err != nil {
		logger.Warn("initial blog sync failed", slog.String("error", err.Error()))
	}

	srv := mcpserver.New(gallery, blog.NewService(content, db))
	return srv.ServeStdio()
}
