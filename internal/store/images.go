// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const imageColumns = `id, filename, original_name, section, subsection, title,
	file_path, file_size, mime_type, is_url, uploaded_at, is_active`

func scanImage(row interface{ Scan(...any) error }) (Image, error) {
	var img Image
	err := row.Scan(&img.ID, &img.Filename, &img.OriginalName, &img.Section,
		&img.Subsection, &img.Title, &img.FilePath, &img.FileSize,
		&img.MimeType, &img.IsUrl, &img.UploadedAt, &img.IsActive)
	return img, err
}

func collectImages(rows *sql.Rows) ([]Image, error) {
	defer func() { _ = rows.Close() }()
	var items []Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	return items, rows.Err()
}

// GetImageByID returns a single image row, active or not.
func (q *Queries) GetImageByID(ctx context.Context, id int64) (Image, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+imageColumns+` FROM images WHERE id = ?`, id)
	return scanImage(row)
}

// ListActiveImages returns all active images, newest first.
func (q *Queries) ListActiveImages(ctx context.Context) ([]Image, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+imageColumns+` FROM images WHERE is_active = 1 ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

// ListActiveImagesBySection returns active images in a section, newest first.
func (q *Queries) ListActiveImagesBySection(ctx context.Context, section string) ([]Image, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+imageColumns+` FROM images
		 WHERE is_active = 1 AND section = ?
		 ORDER BY uploaded_at DESC, id DESC`, section)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

// ListActiveImagesBySubsectionParams holds the fields for ListActiveImagesBySubsection.
type ListActiveImagesBySubsectionParams struct {
	Section    string
	Subsection string
}

// ListActiveImagesBySubsection returns active images for a (section, subsection) pair.
func (q *Queries) ListActiveImagesBySubsection(ctx context.Context, arg ListActiveImagesBySubsectionParams) ([]Image, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+imageColumns+` FROM images
		 WHERE is_active = 1 AND section = ? AND subsection = ?
		 ORDER BY uploaded_at DESC, id DESC`, arg.Section, arg.Subsection)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

// CountActiveImagesBySection returns the number of active images in a section.
func (q *Queries) CountActiveImagesBySection(ctx context.Context, section string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM images WHERE is_active = 1 AND section = ?`, section).Scan(&n)
	return n, err
}

// OldestActiveImageBySection returns the oldest active image in a section.
func (q *Queries) OldestActiveImageBySection(ctx context.Context, section string) (Image, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+imageColumns+` FROM images
		 WHERE is_active = 1 AND section = ?
		 ORDER BY uploaded_at ASC, id ASC LIMIT 1`, section)
	return scanImage(row)
}

// CreateImageParams holds the fields for CreateImage.
type CreateImageParams struct {
	Filename     string
	OriginalName string
	Section      string
	Subsection   string
	Title        string
	FilePath     string
	FileSize     int64
	MimeType     string
	IsUrl        bool
	UploadedAt   time.Time
}

// CreateImage inserts an image row and returns the stored row.
func (q *Queries) CreateImage(ctx context.Context, arg CreateImageParams) (Image, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO images (filename, original_name, section, subsection, title,
		   file_path, file_size, mime_type, is_url, uploaded_at, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		arg.Filename, arg.OriginalName, arg.Section, arg.Subsection, arg.Title,
		arg.FilePath, arg.FileSize, arg.MimeType, arg.IsUrl, arg.UploadedAt)
	if err != nil {
		return Image{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Image{}, err
	}
	return q.GetImageByID(ctx, id)
}

// DeactivateImage soft-deletes an image. Deactivation is terminal: there
// is no reactivation path.
func (q *Queries) DeactivateImage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `UPDATE images SET is_active = 0 WHERE id = ?`, id)
	return err
}

// DeactivateImagesBySection soft-deletes every active image in a section.
// Returns the number of rows affected.
func (q *Queries) DeactivateImagesBySection(ctx context.Context, section string) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE images SET is_active = 0 WHERE is_active = 1 AND section = ?`, section)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
