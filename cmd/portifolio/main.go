// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/jadofils/company-portifolio/internal/cache"
	"github.com/jadofils/company-portifolio/internal/config"
	"github.com/jadofils/company-portifolio/internal/geoip"
	"github.com/jadofils/company-portifolio/internal/handler/api"
	"github.com/jadofils/company-portifolio/internal/logging"
	"github.com/jadofils/company-portifolio/internal/middleware"
	"github.com/jadofils/company-portifolio/internal/scheduler"
	"github.com/jadofils/company-portifolio/internal/service"
	"github.com/jadofils/company-portifolio/internal/session"
	"github.com/jadofils/company-portifolio/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Company portifolio site and admin panel\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_CSRF_KEY       CSRF signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_DB_DRIVER      Database driver: sqlite|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_DB_DSN         Database path or DSN (default: ./data/portifolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_SERVER_PORT    Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_UPLOADS_DIR    Upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_REDIS_URL      Redis URL for shared caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTIFOLIO_GEOIP_DB_PATH  GeoLite2-Country.mmdb path (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("portifolio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := logging.ParseLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	// Ensure data and upload directories exist
	if cfg.DBDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}
	if err := os.MkdirAll(cfg.PDFDir, 0o755); err != nil {
		return fmt.Errorf("creating pdf directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "driver", cfg.DBDriver)
	dbConfig := store.DefaultDBConfig(cfg.DBDSN)
	dbConfig.Driver = cfg.DBDriver
	db, err := store.NewDBWithConfig(dbConfig)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to mirror WARN and ERROR records into the change log
	slog.SetDefault(slog.New(logging.NewHandler(textHandler, db)))
	slog.Info("change log mirroring enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Session manager backed by the sessions table
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Cache backend: Redis when configured, memory otherwise
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	cacher := cache.New(ctx, cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cacheTTL,
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Warn("error closing cache", "error", err)
		}
	}()

	// GeoIP lookup for login audit entries (optional)
	geo := &geoip.Lookup{}
	if cfg.GeoIPEnabled() {
		if err := geo.Open(cfg.GeoIPDBPath); err != nil {
			slog.Warn("failed to open GeoIP database", "path", cfg.GeoIPDBPath, "error", err)
		} else {
			defer geo.Close()
			slog.Info("GeoIP lookups enabled", "path", cfg.GeoIPDBPath)
		}
	}

	// Services
	audit := service.NewAuditService(db)
	contentService := service.NewContentService(db, audit, cacher)
	imageService := service.NewImageService(db, audit, cacher, cfg.UploadsDir)
	settingsService := service.NewSettingsService(db, audit, cacher)
	publicationService := service.NewPublicationService(db, audit, cacher, cfg.PDFDir)

	// Nightly audit trail prune
	if cfg.ChangeLogRetentionDays > 0 {
		sched := scheduler.New(audit, cfg.ChangeLogRetentionDays)
		sched.Start()
		defer sched.Stop()
		slog.Info("scheduler started", "retention_days", cfg.ChangeLogRetentionDays)
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	globalLimiter := middleware.NewGlobalRateLimiter(10, 20)

	apiHandler := api.NewHandler(api.Deps{
		DB:           db,
		Sessions:     sessionManager,
		Audit:        audit,
		Content:      contentService,
		Images:       imageService,
		Settings:     settingsService,
		Publications: publicationService,
		Login:        loginProtection,
		Geo:          geo,
		Cache:        cacher,
		CacheTTL:     cacheTTL,
	})

	// Router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.CSRFKey), cfg.IsDevelopment()))
	requireAdmin := middleware.RequireAdmin(sessionManager, db)
	loadUser := middleware.LoadUser(sessionManager, db)

	r.Get("/health", apiHandler.Health)
	r.Get("/health/live", apiHandler.Liveness)
	r.Get("/health/ready", apiHandler.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.Use(globalLimiter.Middleware())
		r.Get("/status", apiHandler.Status)

		// Authentication
		r.With(loginProtection.Middleware()).Post("/auth", apiHandler.Login)
		r.Post("/logout", apiHandler.Logout)
		r.With(requireAdmin).Get("/auth/me", apiHandler.Me)
		r.With(requireAdmin, csrfMiddleware).Put("/auth/password", apiHandler.ChangePassword)

		// Content
		r.Get("/content", apiHandler.ListContent)
		r.Get("/content/merged", apiHandler.MergedContent)
		r.Get("/content/{id}", apiHandler.GetContent)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin, csrfMiddleware)
			r.Post("/content", apiHandler.CreateContent)
			r.Put("/content/{id}", apiHandler.UpdateContent)
			r.Delete("/content/{id}", apiHandler.DeleteContent)
		})

		// Images
		r.Get("/images", apiHandler.ListImages)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin, csrfMiddleware)
			r.Post("/images", apiHandler.UploadImage)
			r.Delete("/images", apiHandler.DeleteImagesBySection)
			r.Delete("/images/{id}", apiHandler.DeleteImage)
		})

		// Settings
		r.Get("/settings", apiHandler.GetSettings)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin, csrfMiddleware)
			r.Post("/settings", apiHandler.UpdateSetting)
			r.Put("/settings", apiHandler.UpdateSettings)
		})

		// Contact messages
		r.Post("/contact", apiHandler.SubmitContact)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/contact", apiHandler.ListContactMessages)
			r.With(csrfMiddleware).Put("/contact/{id}", apiHandler.UpdateContactMessageStatus)
		})

		// Publications
		r.With(loadUser).Get("/publications", apiHandler.ListPublications)
		r.With(loadUser).Get("/publications/{id}", apiHandler.GetPublication)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin, csrfMiddleware)
			r.Post("/publications", apiHandler.CreatePublication)
			r.Delete("/publications/{id}", apiHandler.DeletePublication)
		})

		// Audit trail
		r.With(requireAdmin).Get("/changes", apiHandler.ListChanges)
	})

	// Uploaded files (images and publication PDFs)
	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=604800")
		uploadsFS.ServeHTTP(w, req)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // allow large uploads on slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
