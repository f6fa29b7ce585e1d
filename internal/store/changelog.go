// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const changeColumns = `id, table_name, record_id, action, old_data, new_data, changed_by, changed_at`

func scanChange(row interface{ Scan(...any) error }) (ChangeLog, error) {
	var c ChangeLog
	err := row.Scan(&c.ID, &c.TableName, &c.RecordID, &c.Action, &c.OldData,
		&c.NewData, &c.ChangedBy, &c.ChangedAt)
	return c, err
}

// CreateChangeParams holds the fields for CreateChange.
type CreateChangeParams struct {
	TableName string
	RecordID  int64
	Action    string
	OldData   string
	NewData   string
	ChangedBy sql.NullInt64
	ChangedAt time.Time
}

// CreateChange appends an audit trail entry.
func (q *Queries) CreateChange(ctx context.Context, arg CreateChangeParams) (ChangeLog, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO change_log (table_name, record_id, action, old_data, new_data, changed_by, changed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.TableName, arg.RecordID, arg.Action, arg.OldData, arg.NewData, arg.ChangedBy, arg.ChangedAt)
	if err != nil {
		return ChangeLog{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ChangeLog{}, err
	}
	row := q.db.QueryRowContext(ctx,
		`SELECT `+changeColumns+` FROM change_log WHERE id = ?`, id)
	return scanChange(row)
}

// ListChangesParams holds the fields for ListChanges.
type ListChangesParams struct {
	Limit  int64
	Offset int64
}

// ListChanges returns audit entries, newest first.
func (q *Queries) ListChanges(ctx context.Context, arg ListChangesParams) ([]ChangeLog, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+changeColumns+` FROM change_log
		 ORDER BY changed_at DESC, id DESC LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ChangeLog
	for rows.Next() {
		c, err := scanChange(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountChanges returns the total number of audit entries.
func (q *Queries) CountChanges(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM change_log`).Scan(&n)
	return n, err
}

// DeleteChangesBefore prunes audit entries older than the cutoff.
// Returns the number of rows removed.
func (q *Queries) DeleteChangesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM change_log WHERE changed_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
