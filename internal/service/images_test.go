// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/store"
)

func newTestImageService(t *testing.T) (*ImageService, *store.Queries) {
	t.Helper()
	db := testDB(t)
	svc := NewImageService(db, NewAuditService(db), nil, t.TempDir())
	return svc, store.New(db)
}

func TestUploadURLValidation(t *testing.T) {
	svc, _ := newTestImageService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"https URL", "https://cdn.example.com/logo.png", true},
		{"http URL", "http://cdn.example.com/logo.png", true},
		{"relative path", "/images/logo.png", false},
		{"ftp scheme", "ftp://example.com/logo.png", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadURL(ctx, tt.url, model.SectionLogo, "", "Logo", nil)
			if tt.ok && err != nil {
				t.Errorf("expected success, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidImageURL) {
				t.Errorf("expected ErrInvalidImageURL, got %v", err)
			}
		})
	}
}

func TestHeroCapEvictsOldest(t *testing.T) {
	svc, q := newTestImageService(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < model.HeroImageCap+1; i++ {
		img, err := svc.UploadURL(ctx,
			fmt.Sprintf("https://cdn.example.com/hero-%d.jpg", i),
			model.SectionHero, "", "", nil)
		if err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
		ids = append(ids, img.ID)
	}

	active, err := q.ListActiveImagesBySection(ctx, model.SectionHero)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != model.HeroImageCap {
		t.Fatalf("expected %d active hero images, got %d", model.HeroImageCap, len(active))
	}

	// First upload was evicted, the rest survive
	first, err := q.GetImageByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if first.IsActive {
		t.Error("expected oldest hero image to be deactivated")
	}
	for _, id := range ids[1:] {
		img, err := q.GetImageByID(ctx, id)
		if err != nil {
			t.Fatalf("get %d: %v", id, err)
		}
		if !img.IsActive {
			t.Errorf("expected image %d to stay active", id)
		}
	}
}

func TestHeroCapDoesNotApplyToOtherSections(t *testing.T) {
	svc, q := newTestImageService(t)
	ctx := context.Background()

	for i := 0; i < model.HeroImageCap+2; i++ {
		_, err := svc.UploadURL(ctx,
			fmt.Sprintf("https://cdn.example.com/about-%d.jpg", i),
			model.SectionAbout, "", "", nil)
		if err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}

	active, err := q.ListActiveImagesBySection(ctx, model.SectionAbout)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != model.HeroImageCap+2 {
		t.Errorf("expected %d active images, got %d", model.HeroImageCap+2, len(active))
	}
}

func TestListReturnsOnlyActive(t *testing.T) {
	svc, _ := newTestImageService(t)
	ctx := context.Background()

	first, err := svc.UploadURL(ctx, "https://cdn.example.com/1.jpg", model.SectionAbout, "", "", nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.UploadURL(ctx, "https://cdn.example.com/2.jpg", model.SectionAbout, "", "", nil); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Deactivate(ctx, first.ID, nil); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	rows := svc.List(ctx, model.SectionAbout, "")
	if len(rows) != 1 {
		t.Fatalf("expected 1 active image, got %d", len(rows))
	}
	if rows[0].ID == first.ID {
		t.Error("deactivated image returned from List")
	}
}

func TestListFallsBackToEmpty(t *testing.T) {
	db := testDB(t)
	svc := NewImageService(db, NewAuditService(db), nil, t.TempDir())

	// Closing the database makes every query fail; after retries the
	// list degrades to empty instead of erroring.
	_ = db.Close()

	rows := svc.List(context.Background(), model.SectionHero, "")
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty slice, got %v", rows)
	}
}

func TestDeactivateSection(t *testing.T) {
	svc, q := newTestImageService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.UploadURL(ctx,
			fmt.Sprintf("https://cdn.example.com/p-%d.jpg", i),
			model.SectionProducts, "", "", nil); err != nil {
			t.Fatalf("upload: %v", err)
		}
	}

	n, err := svc.DeactivateSection(ctx, model.SectionProducts, nil)
	if err != nil {
		t.Fatalf("deactivate section: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 deactivated, got %d", n)
	}

	count, err := q.CountActiveImagesBySection(ctx, model.SectionProducts)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 active, got %d", count)
	}
}
