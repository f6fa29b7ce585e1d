// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSRFKey = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTIFOLIO_CSRF_KEY", testCSRFKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UseRedisCache())
	assert.False(t, cfg.GeoIPEnabled())
	assert.Equal(t, 365, cfg.ChangeLogRetentionDays)
	assert.Equal(t, 300, cfg.CacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTIFOLIO_CSRF_KEY", testCSRFKey)
	t.Setenv("PORTIFOLIO_DB_DRIVER", "mysql")
	t.Setenv("PORTIFOLIO_ENV", "production")
	t.Setenv("PORTIFOLIO_SERVER_PORT", "9090")
	t.Setenv("PORTIFOLIO_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "localhost:9090", cfg.ServerAddr())
	assert.True(t, cfg.UseRedisCache())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("PORTIFOLIO_CSRF_KEY", testCSRFKey)
	t.Setenv("PORTIFOLIO_DB_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORTIFOLIO_DB_DRIVER")
}

func TestLoadRequiresLongCSRFKey(t *testing.T) {
	t.Setenv("PORTIFOLIO_CSRF_KEY", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORTIFOLIO_CSRF_KEY")
}
