// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const messageColumns = `id, name, email, company, message, status, created_at`

func scanMessage(row interface{ Scan(...any) error }) (ContactMessage, error) {
	var m ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Company, &m.Message, &m.Status, &m.CreatedAt)
	return m, err
}

func collectMessages(rows *sql.Rows) ([]ContactMessage, error) {
	defer func() { _ = rows.Close() }()
	var items []ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetContactMessageByID returns a single contact message.
func (q *Queries) GetContactMessageByID(ctx context.Context, id int64) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id)
	return scanMessage(row)
}

// ListContactMessages returns all contact messages, newest first.
func (q *Queries) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// ListContactMessagesByStatus returns contact messages with one status, newest first.
func (q *Queries) ListContactMessagesByStatus(ctx context.Context, status string) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE status = ? ORDER BY created_at DESC, id DESC`,
		status)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// CountContactMessagesByStatus returns the number of messages with one status.
func (q *Queries) CountContactMessagesByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE status = ?`, status).Scan(&n)
	return n, err
}

// CreateContactMessageParams holds the fields for CreateContactMessage.
type CreateContactMessageParams struct {
	Name      string
	Email     string
	Company   string
	Message   string
	CreatedAt time.Time
}

// CreateContactMessage inserts an unread contact message and returns the stored row.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, company, message, status, created_at)
		 VALUES (?, ?, ?, ?, 'unread', ?)`,
		arg.Name, arg.Email, arg.Company, arg.Message, arg.CreatedAt)
	if err != nil {
		return ContactMessage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ContactMessage{}, err
	}
	return q.GetContactMessageByID(ctx, id)
}

// UpdateContactMessageStatusParams holds the fields for UpdateContactMessageStatus.
type UpdateContactMessageStatusParams struct {
	ID     int64
	Status string
}

// UpdateContactMessageStatus toggles a message between unread and read.
// Messages are never deleted.
func (q *Queries) UpdateContactMessageStatus(ctx context.Context, arg UpdateContactMessageStatusParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE contact_messages SET status = ? WHERE id = ?`, arg.Status, arg.ID)
	return err
}
