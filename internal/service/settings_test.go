// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/jadofils/company-portifolio/internal/model"
)

func newTestSettingsService(t *testing.T) *SettingsService {
	t.Helper()
	db := testDB(t)
	return NewSettingsService(db, NewAuditService(db), nil)
}

func TestSetManyAppliesAll(t *testing.T) {
	svc := newTestSettingsService(t)
	ctx := context.Background()

	values := map[string]string{
		model.SettingCompanyName:       "Acme Corp",
		model.SettingThemePrimaryColor: "#112233",
		model.SettingShowHero:          "true",
	}
	if err := svc.SetMany(ctx, values, nil); err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	got, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	for key, want := range values {
		if got[key] != want {
			t.Errorf("setting %q = %q, want %q", key, got[key], want)
		}
	}
}

func TestSetManyIsIdempotent(t *testing.T) {
	svc := newTestSettingsService(t)
	ctx := context.Background()

	values := map[string]string{
		model.SettingCompanyName:  "Acme Corp",
		model.SettingCompanyEmail: "info@acme.example",
	}
	if err := svc.SetMany(ctx, values, nil); err != nil {
		t.Fatalf("first SetMany: %v", err)
	}
	if err := svc.SetMany(ctx, values, nil); err != nil {
		t.Fatalf("second SetMany: %v", err)
	}

	got, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != len(values) {
		t.Errorf("expected %d settings, got %d", len(values), len(got))
	}
	if got[model.SettingCompanyName] != "Acme Corp" {
		t.Errorf("unexpected value %q", got[model.SettingCompanyName])
	}
}

func TestSetManyRejectsWholeBatchOnInvalidValue(t *testing.T) {
	svc := newTestSettingsService(t)
	ctx := context.Background()

	err := svc.SetMany(ctx, map[string]string{
		model.SettingCompanyName:       "Acme Corp",
		model.SettingThemePrimaryColor: "not-a-color",
	}, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !model.IsSettingValidationError(err) {
		t.Errorf("expected setting validation error, got %v", err)
	}

	// Nothing was written
	got, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no settings written, got %v", got)
	}
}

func TestSetValidatesValue(t *testing.T) {
	svc := newTestSettingsService(t)
	ctx := context.Background()

	tests := []struct {
		key   string
		value string
		ok    bool
	}{
		{model.SettingThemePrimaryColor, "#abc", true},
		{model.SettingThemePrimaryColor, "#aabbcc", true},
		{model.SettingThemePrimaryColor, "blue", false},
		{model.SettingThemeSpacing, "16", true},
		{model.SettingThemeSpacing, "-1", false},
		{model.SettingThemeSpacing, "1000", false},
		{model.SettingShowPublications, "false", true},
		{model.SettingShowPublications, "maybe", false},
		{model.SettingCompanyPhone, "+250 788 123 456", true},
	}

	for _, tt := range tests {
		err := svc.Set(ctx, tt.key, tt.value, nil)
		if tt.ok && err != nil {
			t.Errorf("Set(%q, %q): unexpected error %v", tt.key, tt.value, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("Set(%q, %q): expected error", tt.key, tt.value)
		}
	}
}

func TestSiteParsesTypedSettings(t *testing.T) {
	svc := newTestSettingsService(t)
	ctx := context.Background()

	err := svc.SetMany(ctx, map[string]string{
		model.SettingCompanyName:       "Acme Corp",
		model.SettingThemePrimaryColor: "#112233",
		model.SettingThemeSpacing:      "24",
		model.SettingShowHero:          "false",
	}, nil)
	if err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	site, err := svc.Site(ctx)
	if err != nil {
		t.Fatalf("Site: %v", err)
	}
	if site.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %q", site.CompanyName)
	}
	if site.Theme.PrimaryColor != "#112233" {
		t.Errorf("PrimaryColor = %q", site.Theme.PrimaryColor)
	}
	if site.Theme.Spacing != 24 {
		t.Errorf("Spacing = %d", site.Theme.Spacing)
	}
	if site.ShowHero {
		t.Error("expected ShowHero false")
	}
	// Missing keys fall back to defaults
	if site.Theme.SecondaryColor == "" {
		t.Error("expected default secondary color")
	}
}
