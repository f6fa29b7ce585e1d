// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpdateSettingAndGetSettings(t *testing.T) {
	_, h, _ := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/settings",
		`{"key":"company_name","value":"Acme Industrial"}`, nil)
	rec := httptest.NewRecorder()
	h.UpdateSetting(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.GetSettings(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp SettingsResponse
	decodeResponse(t, rec, &resp)
	if resp.Values["company_name"] != "Acme Industrial" {
		t.Errorf("expected stored value, got %q", resp.Values["company_name"])
	}
	if resp.Site.CompanyName != "Acme Industrial" {
		t.Errorf("expected typed view to reflect stored value, got %q", resp.Site.CompanyName)
	}
}

func TestUpdateSettingRejectsInvalidValue(t *testing.T) {
	_, h, _ := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/settings",
		`{"key":"theme_primary_color","value":"not-a-color"}`, nil)
	rec := httptest.NewRecorder()
	h.UpdateSetting(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestUpdateSettingsBatchIsAtomic(t *testing.T) {
	_, h, _ := testSetup(t)

	// One invalid value fails the whole batch.
	req := newJSONRequest(t, http.MethodPut, "/api/settings",
		`{"company_name":"New Title","theme_primary_color":"nope"}`, nil)
	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GetSettings(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	var resp SettingsResponse
	decodeResponse(t, rec, &resp)
	if _, ok := resp.Values["company_name"]; ok {
		t.Error("expected no settings written when the batch fails validation")
	}
}
