// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// GetSetting returns a single setting row by key.
func (q *Queries) GetSetting(ctx context.Context, key string) (Setting, error) {
	var s Setting
	err := q.db.QueryRowContext(ctx,
		"SELECT `key`, value, updated_at FROM settings WHERE `key` = ?", key).
		Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return s, err
}

// ListSettings returns all settings ordered by key.
func (q *Queries) ListSettings(ctx context.Context) ([]Setting, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT `key`, value, updated_at FROM settings ORDER BY `key`")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// UpsertSettingParams holds the fields for UpsertSetting.
type UpsertSettingParams struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// UpsertSetting inserts or replaces a setting. Implemented as
// update-then-insert so the same statement works on SQLite and MySQL;
// batch callers wrap it in a transaction.
func (q *Queries) UpsertSetting(ctx context.Context, arg UpsertSettingParams) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE settings SET value = ?, updated_at = ? WHERE `key` = ?",
		arg.Value, arg.UpdatedAt, arg.Key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = q.db.ExecContext(ctx,
		"INSERT INTO settings (`key`, value, updated_at) VALUES (?, ?, ?)",
		arg.Key, arg.Value, arg.UpdatedAt)
	return err
}
