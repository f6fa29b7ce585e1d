// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/store"
)

func TestMergeContent(t *testing.T) {
	defaults := []model.StaticContent{
		{Section: "about", Subsection: "our-history", Title: "Our History", Content: "default history"},
		{Section: "about", Subsection: "vision-mission", Title: "Vision & Mission", Content: "default vision"},
		{Section: "about", Subsection: "team", Title: "Our Team", Content: "default team"},
	}

	now := time.Now()
	rows := []store.CompanyContent{
		{ID: 1, Section: "about", Subsection: "our-history", Title: "History", Content: "db history", UpdatedAt: now},
		{ID: 2, Section: "about", Subsection: "custom", Title: "vision & mission", Content: "db vision", UpdatedAt: now},
		{ID: 3, Section: "about", Subsection: "awards", Title: "Awards", Content: "db awards", UpdatedAt: now},
	}

	items := MergeContent(defaults, rows)
	if len(items) != 4 {
		t.Fatalf("expected 4 merged items, got %d", len(items))
	}

	// Row 1 shadows our-history by subsection
	if items[0].Source != "database" || items[0].Content != "db history" {
		t.Errorf("expected db row to shadow our-history, got %+v", items[0])
	}

	// Row 2 shadows vision-mission by normalized title
	if items[1].Source != "database" || items[1].Content != "db vision" {
		t.Errorf("expected db row to shadow vision-mission, got %+v", items[1])
	}

	// Team has no db row, static fallback survives
	if items[2].Source != "static" || items[2].Title != "Our Team" {
		t.Errorf("expected static team block, got %+v", items[2])
	}

	// Unmatched db row appended after the static list
	if items[3].Source != "database" || items[3].Title != "Awards" {
		t.Errorf("expected awards appended last, got %+v", items[3])
	}
}

func TestMergeContentNoRows(t *testing.T) {
	defaults := model.StaticDefaults("about")
	items := MergeContent(defaults, nil)

	if len(items) != len(defaults) {
		t.Fatalf("expected %d items, got %d", len(defaults), len(items))
	}
	for _, item := range items {
		if item.Source != "static" {
			t.Errorf("expected static source, got %q", item.Source)
		}
		if item.ID != nil {
			t.Errorf("static item should have no ID: %+v", item)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Vision & Mission", "vision mission", true},
		{"Our History", "OUR HISTORY", true},
		{"Our\tHistory", "ourhistory", true},
		{"Products", "Services", false},
	}

	for _, tt := range tests {
		got := normalizeTitle(tt.a) == normalizeTitle(tt.b)
		if got != tt.same {
			t.Errorf("normalizeTitle(%q) vs %q: equal=%v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestContentServiceCreateDuplicate(t *testing.T) {
	db := testDB(t)
	audit := NewAuditService(db)
	svc := NewContentService(db, audit, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "about", "our-history", "Our History", "text", "", nil)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = svc.Create(ctx, "about", "our-history", "Other Title", "text", "", nil)
	if !errors.Is(err, ErrContentExists) {
		t.Errorf("expected ErrContentExists, got %v", err)
	}

	if n := countChangeLog(t, db, model.TableCompanyContent); n != 1 {
		t.Errorf("expected 1 audit entry, got %d", n)
	}
}

func TestContentServiceDeleteIsHard(t *testing.T) {
	db := testDB(t)
	audit := NewAuditService(db)
	svc := NewContentService(db, audit, nil)
	ctx := context.Background()

	row, err := svc.Create(ctx, "services", "consulting", "Consulting", "we consult", "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, row.ID, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM company_content`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected row to be gone, %d remain", n)
	}

	// The static fallback takes over after the hard delete
	items, err := svc.Merged(ctx, "services")
	if err != nil {
		t.Fatalf("merged: %v", err)
	}
	for _, item := range items {
		if item.Source == "database" {
			t.Errorf("expected only static items after delete, got %+v", item)
		}
	}
}

func TestContentServiceSanitizesMarkup(t *testing.T) {
	db := testDB(t)
	svc := NewContentService(db, NewAuditService(db), nil)

	row, err := svc.Create(context.Background(), "about", "team",
		"Team", `hello <script>alert(1)</script><b>world</b>`, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.Content != "hello <b>world</b>" {
		t.Errorf("expected script stripped, got %q", row.Content)
	}
}
