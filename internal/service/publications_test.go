// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestPublicationService(t *testing.T) *PublicationService {
	t.Helper()
	db := testDB(t)
	return NewPublicationService(db, NewAuditService(db), nil, t.TempDir())
}

func TestCreateTextRendersMarkdown(t *testing.T) {
	svc := newTestPublicationService(t)

	row, err := svc.CreateText(context.Background(),
		"Annual Report", "Summary of the year",
		"# Heading\n\nSome **bold** text.", time.Now(), nil)
	if err != nil {
		t.Fatalf("CreateText: %v", err)
	}

	if row.Content != "# Heading\n\nSome **bold** text." {
		t.Errorf("markdown source not preserved: %q", row.Content)
	}
	if !strings.Contains(row.ContentHtml, "<h1") || !strings.Contains(row.ContentHtml, "<strong>bold</strong>") {
		t.Errorf("unexpected rendered HTML: %q", row.ContentHtml)
	}
	if row.PdfPath != "" {
		t.Errorf("text publication should have no PDF path, got %q", row.PdfPath)
	}
}

func TestCreateTextSanitizesHTML(t *testing.T) {
	svc := newTestPublicationService(t)

	row, err := svc.CreateText(context.Background(),
		"Note", "", "hello <script>alert(1)</script> world", time.Now(), nil)
	if err != nil {
		t.Fatalf("CreateText: %v", err)
	}
	if strings.Contains(row.ContentHtml, "<script>") {
		t.Errorf("script survived sanitization: %q", row.ContentHtml)
	}
}

func TestCreateTextRequiresTitleAndContent(t *testing.T) {
	svc := newTestPublicationService(t)
	ctx := context.Background()

	if _, err := svc.CreateText(ctx, "", "", "content", time.Now(), nil); !errors.Is(err, ErrPublicationBody) {
		t.Errorf("missing title: expected ErrPublicationBody, got %v", err)
	}
	if _, err := svc.CreateText(ctx, "Title", "", "  ", time.Now(), nil); !errors.Is(err, ErrPublicationBody) {
		t.Errorf("missing content: expected ErrPublicationBody, got %v", err)
	}
}

func TestPublicationSoftDelete(t *testing.T) {
	svc := newTestPublicationService(t)
	ctx := context.Background()

	row, err := svc.CreateText(ctx, "Whitepaper", "", "body", time.Now(), nil)
	if err != nil {
		t.Fatalf("CreateText: %v", err)
	}

	if err := svc.Deactivate(ctx, row.ID, nil); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	// Row survives, flagged inactive
	got, err := svc.Get(ctx, row.ID)
	if err != nil {
		t.Fatalf("Get after deactivate: %v", err)
	}
	if got.IsActive {
		t.Error("expected publication to be inactive")
	}

	active, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active publications, got %d", len(active))
	}

	all, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 publication including inactive, got %d", len(all))
	}
}
