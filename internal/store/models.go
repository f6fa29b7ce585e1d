// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User is an administrator account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// ContactMessage is an inquiry submitted through the public contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Company   string
	Message   string
	Status    string
	CreatedAt time.Time
}

// CompanyContent is an editable text block keyed by (section, subsection).
// An empty subsection means the block belongs to the section itself.
type CompanyContent struct {
	ID         int64
	Section    string
	Subsection string
	Title      string
	Content    string
	ImageUrl   string
	UpdatedAt  time.Time
}

// Image is an uploaded or URL-referenced media item. Deactivated rows
// (IsActive=false) are kept but excluded from all public reads.
type Image struct {
	ID           int64
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
	IsActive     bool
}

// Setting is a single key/value configuration row.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Publication is a downloadable or inline article. Exactly one of Content
// and PdfPath is set. ContentHtml holds the rendered form of Content.
type Publication struct {
	ID            int64
	Title         string
	Description   string
	Content       string
	ContentHtml   string
	PdfPath       string
	PublishedDate time.Time
	IsActive      bool
}

// ChangeLog is one audit trail entry recording a mutation.
type ChangeLog struct {
	ID        int64
	TableName string
	RecordID  int64
	Action    string
	OldData   string
	NewData   string
	ChangedBy sql.NullInt64
	ChangedAt time.Time
}
