// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/jadofils/company-portifolio/internal/store"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"PORTIFOLIO_DB_DRIVER" envDefault:"sqlite"`
	DBDSN      string `env:"PORTIFOLIO_DB_DSN" envDefault:"./data/portifolio.db"`
	ServerHost string `env:"PORTIFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTIFOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTIFOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTIFOLIO_LOG_LEVEL" envDefault:"info"`

	// Upload directories. Images land under UploadsDir/<section>/,
	// publication PDFs under PDFDir.
	UploadsDir string `env:"PORTIFOLIO_UPLOADS_DIR" envDefault:"./uploads"`
	PDFDir     string `env:"PORTIFOLIO_PDF_DIR" envDefault:"./uploads/publications"`

	// CSRF protection key for admin-mutating routes, 32 bytes minimum.
	CSRFKey string `env:"PORTIFOLIO_CSRF_KEY,required"`

	// Cache configuration.
	RedisURL     string `env:"PORTIFOLIO_REDIS_URL"`                       // Optional Redis URL for shared caching
	CachePrefix  string `env:"PORTIFOLIO_CACHE_PREFIX" envDefault:"cp:"`   // Redis key prefix
	CacheTTL     int    `env:"PORTIFOLIO_CACHE_TTL" envDefault:"300"`      // Default cache TTL in seconds
	CacheMaxSize int    `env:"PORTIFOLIO_CACHE_MAX_SIZE" envDefault:"512"` // Max memory cache entries

	// GeoIP configuration.
	GeoIPDBPath string `env:"PORTIFOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb

	// Seeding configuration.
	DoSeed        bool   `env:"PORTIFOLIO_DO_SEED" envDefault:"true"`
	AdminEmail    string `env:"PORTIFOLIO_ADMIN_EMAIL"`
	AdminPassword string `env:"PORTIFOLIO_ADMIN_PASSWORD"`

	// ChangeLogRetentionDays is how long audit entries are kept before
	// the nightly prune removes them. Zero disables pruning.
	ChangeLogRetentionDays int `env:"PORTIFOLIO_CHANGELOG_RETENTION_DAYS" envDefault:"365"`
}

// MinCSRFKeyLength is the minimum required length for the CSRF key.
const MinCSRFKeyLength = 32

// IsDevelopment returns true if the application runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBDriver != store.DriverSQLite && cfg.DBDriver != store.DriverMySQL {
		return nil, fmt.Errorf("PORTIFOLIO_DB_DRIVER must be %q or %q, got %q",
			store.DriverSQLite, store.DriverMySQL, cfg.DBDriver)
	}

	if len(cfg.CSRFKey) < MinCSRFKeyLength {
		return nil, fmt.Errorf("PORTIFOLIO_CSRF_KEY must be at least %d bytes long, got %d; "+
			"generate one with: openssl rand -base64 32",
			MinCSRFKeyLength, len(cfg.CSRFKey))
	}

	return cfg, nil
}
