// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jadofils/company-portifolio/internal/cache"
	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/store"
)

// SettingsService manages site settings. Values are validated against
// their key's type before they reach the database, and batch updates
// are applied in a single transaction.
type SettingsService struct {
	db      *sql.DB
	queries *store.Queries
	audit   *AuditService
	cache   cache.Cacher
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(db *sql.DB, audit *AuditService, c cache.Cacher) *SettingsService {
	return &SettingsService{db: db, queries: store.New(db), audit: audit, cache: c}
}

// All returns every stored setting as a key/value map.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.queries.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Site returns the typed site settings, falling back to defaults for
// missing or invalid values.
func (s *SettingsService) Site(ctx context.Context) (model.SiteSettings, error) {
	raw, err := s.All(ctx)
	if err != nil {
		return model.SiteSettings{}, err
	}
	return model.ParseSettings(raw), nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(ctx context.Context, key, value string, userID *int64) error {
	if err := model.ValidateSettingValue(key, value); err != nil {
		return err
	}
	err := s.queries.UpsertSetting(ctx, store.UpsertSettingParams{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, Entry{
		Table: model.TableSettings, RecordID: 0,
		Action:  model.ChangeActionUpdate,
		NewData: map[string]string{key: value},
		UserID:  userID,
	})
	s.invalidate(ctx)
	return nil
}

// SetMany validates and stores a batch of settings atomically: either
// every pair is applied or none are.
func (s *SettingsService) SetMany(ctx context.Context, values map[string]string, userID *int64) error {
	for key, value := range values {
		if err := model.ValidateSettingValue(key, value); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)
	now := time.Now()
	for key, value := range values {
		err := q.UpsertSetting(ctx, store.UpsertSettingParams{
			Key:       key,
			Value:     value,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("upsert %q: %w", key, err)
		}
	}
	s.audit.RecordIn(ctx, q, Entry{
		Table: model.TableSettings, RecordID: 0,
		Action:  model.ChangeActionUpdate,
		NewData: values,
		UserID:  userID,
	})
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.SettingsKey()); err != nil {
		slog.Warn("failed to invalidate settings cache", "error", err)
	}
}
