// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const contentColumns = `id, section, subsection, title, content, image_url, updated_at`

func scanContent(row interface{ Scan(...any) error }) (CompanyContent, error) {
	var c CompanyContent
	err := row.Scan(&c.ID, &c.Section, &c.Subsection, &c.Title, &c.Content,
		&c.ImageUrl, &c.UpdatedAt)
	return c, err
}

func collectContent(rows *sql.Rows) ([]CompanyContent, error) {
	defer func() { _ = rows.Close() }()
	var items []CompanyContent
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListContent returns all content blocks ordered by section and subsection.
func (q *Queries) ListContent(ctx context.Context) ([]CompanyContent, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contentColumns+` FROM company_content ORDER BY section, subsection, id`)
	if err != nil {
		return nil, err
	}
	return collectContent(rows)
}

// ListContentBySection returns content blocks in one section, ordered by subsection.
func (q *Queries) ListContentBySection(ctx context.Context, section string) ([]CompanyContent, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contentColumns+` FROM company_content WHERE section = ? ORDER BY subsection, id`,
		section)
	if err != nil {
		return nil, err
	}
	return collectContent(rows)
}

// GetContentByID returns a single content block.
func (q *Queries) GetContentByID(ctx context.Context, id int64) (CompanyContent, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM company_content WHERE id = ?`, id)
	return scanContent(row)
}

// GetContentBySectionSubsectionParams holds the fields for GetContentBySectionSubsection.
type GetContentBySectionSubsectionParams struct {
	Section    string
	Subsection string
}

// GetContentBySectionSubsection returns the content block for a (section, subsection) pair.
func (q *Queries) GetContentBySectionSubsection(ctx context.Context, arg GetContentBySectionSubsectionParams) (CompanyContent, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM company_content WHERE section = ? AND subsection = ?`,
		arg.Section, arg.Subsection)
	return scanContent(row)
}

// CreateContentParams holds the fields for CreateContent.
type CreateContentParams struct {
	Section    string
	Subsection string
	Title      string
	Content    string
	ImageUrl   string
	UpdatedAt  time.Time
}

// CreateContent inserts a content block and returns the stored row.
// The unique index on (section, subsection) rejects duplicates.
func (q *Queries) CreateContent(ctx context.Context, arg CreateContentParams) (CompanyContent, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO company_content (section, subsection, title, content, image_url, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Section, arg.Subsection, arg.Title, arg.Content, arg.ImageUrl, arg.UpdatedAt)
	if err != nil {
		return CompanyContent{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return CompanyContent{}, err
	}
	return q.GetContentByID(ctx, id)
}

// UpdateContentParams holds the fields for UpdateContent.
type UpdateContentParams struct {
	ID         int64
	Section    string
	Subsection string
	Title      string
	Content    string
	ImageUrl   string
	UpdatedAt  time.Time
}

// UpdateContent replaces a content block and returns the stored row.
func (q *Queries) UpdateContent(ctx context.Context, arg UpdateContentParams) (CompanyContent, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE company_content
		 SET section = ?, subsection = ?, title = ?, content = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Section, arg.Subsection, arg.Title, arg.Content, arg.ImageUrl, arg.UpdatedAt, arg.ID)
	if err != nil {
		return CompanyContent{}, err
	}
	return q.GetContentByID(ctx, arg.ID)
}

// DeleteContent removes a content block entirely. Content is the one
// resource with hard deletes; images and publications are soft-deleted.
func (q *Queries) DeleteContent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM company_content WHERE id = ?`, id)
	return err
}
