// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL: time.Minute,
		MaxSize:    8,
	})
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

func TestMemoryCacheGetSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("got %q", got)
	}

	// Returned slice is a copy
	got[0] = 'X'
	again, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get again: %v", err)
	}
	if string(again) != "value" {
		t.Errorf("cached value mutated through returned slice: %q", again)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(40 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, ContentKey("about"), []byte("a"), 0)
	_ = c.Set(ctx, ContentKey("services"), []byte("b"), 0)
	_ = c.Set(ctx, SettingsKey(), []byte("c"), 0)

	if err := c.DeleteByPrefix(ctx, PrefixContent); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}

	if _, err := c.Get(ctx, ContentKey("about")); !errors.Is(err, ErrCacheMiss) {
		t.Error("content key survived prefix delete")
	}
	if _, err := c.Get(ctx, SettingsKey()); err != nil {
		t.Errorf("settings key should survive, got %v", err)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 8})
	_ = c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryCacheEvictsAtCap(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		key := string(rune('a' + i))
		if err := c.Set(ctx, key, []byte("v"), 0); err != nil {
			t.Fatalf("Set %q: %v", key, err)
		}
	}
	if c.Len() > 8 {
		t.Errorf("cache exceeded max size: %d entries", c.Len())
	}
}
