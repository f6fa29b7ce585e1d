// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// testDB creates an in-memory SQLite database with the tables the
// services touch.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE company_content (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			section TEXT NOT NULL,
			subsection TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		);
		CREATE UNIQUE INDEX idx_company_content_section_subsection
			ON company_content(section, subsection);

		CREATE TABLE images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL,
			original_name TEXT NOT NULL,
			section TEXT NOT NULL,
			subsection TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			file_path TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			mime_type TEXT NOT NULL DEFAULT '',
			is_url INTEGER NOT NULL DEFAULT 0,
			uploaded_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE publications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			content_html TEXT NOT NULL DEFAULT '',
			pdf_path TEXT NOT NULL DEFAULT '',
			published_date DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE change_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_name TEXT NOT NULL,
			record_id INTEGER NOT NULL DEFAULT 0,
			action TEXT NOT NULL,
			old_data TEXT NOT NULL DEFAULT '',
			new_data TEXT NOT NULL DEFAULT '',
			changed_by INTEGER,
			changed_at DATETIME NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// countChangeLog returns the number of audit entries for a table.
func countChangeLog(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM change_log WHERE table_name = ?`, table).Scan(&n)
	if err != nil {
		t.Fatalf("count change_log: %v", err)
	}
	return n
}
