// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func seedChanges(t *testing.T, db *sql.DB, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		_, err := db.Exec(
			`INSERT INTO change_log (table_name, record_id, action, changed_at) VALUES ('company_content', ?, 'update', ?)`,
			i+1, base.Add(time.Duration(i)*time.Second),
		)
		if err != nil {
			t.Fatalf("failed to seed change log: %v", err)
		}
	}
}

func TestListChangesPagination(t *testing.T) {
	db, h, _ := testSetup(t)
	seedChanges(t, db, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/changes?page=2&per_page=3", nil)
	rec := httptest.NewRecorder()
	h.ListChanges(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []ChangeResponse `json:"data"`
		Meta Meta             `json:"meta"`
	}
	decodeJSONBody(t, rec, &resp)

	if len(resp.Data) != 3 {
		t.Errorf("expected 3 entries on page 2, got %d", len(resp.Data))
	}
	if resp.Meta.Total != 7 {
		t.Errorf("expected total 7, got %d", resp.Meta.Total)
	}
	if resp.Meta.Pages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.Meta.Pages)
	}
	if resp.Meta.Page != 2 || resp.Meta.PerPage != 3 {
		t.Errorf("unexpected meta: page=%d per_page=%d", resp.Meta.Page, resp.Meta.PerPage)
	}
}

func TestListChangesNewestFirstAcrossPages(t *testing.T) {
	db, h, _ := testSetup(t)
	seedChanges(t, db, 5)

	req := httptest.NewRequest(http.MethodGet, "/api/changes?per_page=2", nil)
	rec := httptest.NewRecorder()
	h.ListChanges(rec, req)

	var resp struct {
		Data []ChangeResponse `json:"data"`
	}
	decodeJSONBody(t, rec, &resp)

	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Data))
	}
	// Records were seeded with ascending timestamps, so the most recent
	// record ID comes back first.
	if resp.Data[0].RecordID != 5 {
		t.Errorf("expected newest record first, got record %d", resp.Data[0].RecordID)
	}
}

func TestListChangesClampsPerPage(t *testing.T) {
	db, h, _ := testSetup(t)
	seedChanges(t, db, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/changes?per_page=100000", nil)
	rec := httptest.NewRecorder()
	h.ListChanges(rec, req)

	var resp struct {
		Meta Meta `json:"meta"`
	}
	decodeJSONBody(t, rec, &resp)
	if resp.Meta.PerPage != maxChangesPerPage {
		t.Errorf("expected per_page clamped to %d, got %d", maxChangesPerPage, resp.Meta.PerPage)
	}
}
