// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Options selects and configures the cache backend.
type Options struct {
	RedisURL   string        // empty = in-memory cache
	Prefix     string        // Redis key prefix
	DefaultTTL time.Duration // TTL used when Set receives zero
	MaxSize    int           // memory cache entry cap
}

// New builds the configured cache backend. When Redis is configured but
// unreachable, it logs a warning and falls back to the in-memory cache
// instead of refusing to start.
func New(ctx context.Context, opts Options) Cacher {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 5 * time.Minute
	}

	if opts.RedisURL != "" {
		rc, err := NewRedisCache(ctx, opts.RedisURL, opts.Prefix, opts.DefaultTTL)
		if err == nil {
			slog.Info("cache initialized", "backend", "redis")
			return rc
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	slog.Info("cache initialized", "backend", "memory")
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: time.Minute,
	})
}
