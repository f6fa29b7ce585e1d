// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const publicationColumns = `id, title, description, content, content_html,
	pdf_path, published_date, is_active`

func scanPublication(row interface{ Scan(...any) error }) (Publication, error) {
	var p Publication
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Content, &p.ContentHtml,
		&p.PdfPath, &p.PublishedDate, &p.IsActive)
	return p, err
}

func collectPublications(rows *sql.Rows) ([]Publication, error) {
	defer func() { _ = rows.Close() }()
	var items []Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// GetPublicationByID returns a single publication, active or not.
func (q *Queries) GetPublicationByID(ctx context.Context, id int64) (Publication, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+publicationColumns+` FROM publications WHERE id = ?`, id)
	return scanPublication(row)
}

// ListActivePublications returns active publications, newest first.
func (q *Queries) ListActivePublications(ctx context.Context) ([]Publication, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+publicationColumns+` FROM publications
		 WHERE is_active = 1 ORDER BY published_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectPublications(rows)
}

// ListPublications returns all publications including soft-deleted ones,
// newest first. Admin use only.
func (q *Queries) ListPublications(ctx context.Context) ([]Publication, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+publicationColumns+` FROM publications ORDER BY published_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectPublications(rows)
}

// CreatePublicationParams holds the fields for CreatePublication.
type CreatePublicationParams struct {
	Title         string
	Description   string
	Content       string
	ContentHtml   string
	PdfPath       string
	PublishedDate time.Time
}

// CreatePublication inserts an active publication and returns the stored row.
func (q *Queries) CreatePublication(ctx context.Context, arg CreatePublicationParams) (Publication, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO publications (title, description, content, content_html, pdf_path, published_date, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, 1)`,
		arg.Title, arg.Description, arg.Content, arg.ContentHtml, arg.PdfPath, arg.PublishedDate)
	if err != nil {
		return Publication{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Publication{}, err
	}
	return q.GetPublicationByID(ctx, id)
}

// DeactivatePublication soft-deletes a publication. The row remains in
// the table for direct store inspection.
func (q *Queries) DeactivatePublication(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `UPDATE publications SET is_active = 0 WHERE id = ?`, id)
	return err
}
