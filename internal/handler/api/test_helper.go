// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/jadofils/company-portifolio/internal/auth"
	"github.com/jadofils/company-portifolio/internal/geoip"
	"github.com/jadofils/company-portifolio/internal/middleware"
	"github.com/jadofils/company-portifolio/internal/service"
	"github.com/jadofils/company-portifolio/internal/session"
)

// testDB creates an in-memory SQLite database with the full schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'admin',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			last_login_at DATETIME
		);

		CREATE TABLE contact_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'unread',
			created_at DATETIME NOT NULL
		);

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

		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
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

// testSetup creates a test database, handler, and session manager.
func testSetup(t *testing.T) (*sql.DB, *Handler, *scs.SessionManager) {
	t.Helper()
	db := testDB(t)

	sm := session.New(db, true)
	audit := service.NewAuditService(db)

	h := NewHandler(Deps{
		DB:           db,
		Sessions:     sm,
		Audit:        audit,
		Content:      service.NewContentService(db, audit, nil),
		Images:       service.NewImageService(db, audit, nil, t.TempDir()),
		Settings:     service.NewSettingsService(db, audit, nil),
		Publications: service.NewPublicationService(db, audit, nil, t.TempDir()),
		Login:        middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		Geo:          &geoip.Lookup{},
		CacheTTL:     time.Minute,
	})
	return db, h, sm
}

// createTestUser inserts an admin user and returns its ID.
func createTestUser(t *testing.T, db *sql.DB, email, password string) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	result, err := db.Exec(
		`INSERT INTO users (email, password_hash, name, role, created_at, updated_at) VALUES (?, ?, 'Test Admin', 'admin', ?, ?)`,
		email, hash, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with a JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// decodeResponse decodes the standard response envelope into data.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data any) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data != nil {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			t.Fatalf("failed to decode response data: %v", err)
		}
	}
}

// decodeJSONBody decodes the full response body, envelope included.
func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// sessionRouter wraps handlers with the session middleware so session
// operations inside them work.
func sessionRouter(sm *scs.SessionManager, method, pattern string, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Method(method, pattern, handler)
	return r
}
