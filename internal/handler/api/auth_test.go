// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	db, h, sm := testSetup(t)
	createTestUser(t, db, "admin@example.com", "correct-horse-battery")

	router := sessionRouter(sm, http.MethodPost, "/api/auth", h.Login)

	req := newJSONRequest(t, http.MethodPost, "/api/auth",
		`{"email":"admin@example.com","password":"correct-horse-battery"}`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	decodeResponse(t, rec, &resp)
	if !resp.Success {
		t.Error("expected success to be true")
	}
	if resp.User.Email != "admin@example.com" {
		t.Errorf("expected user email admin@example.com, got %q", resp.User.Email)
	}
	if resp.User.Role != "admin" {
		t.Errorf("expected role admin, got %q", resp.User.Role)
	}

	if cookies := rec.Result().Cookies(); len(cookies) == 0 {
		t.Error("expected a session cookie to be set")
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	db, h, sm := testSetup(t)
	createTestUser(t, db, "admin@example.com", "correct-horse-battery")

	router := sessionRouter(sm, http.MethodPost, "/api/auth", h.Login)

	req := newJSONRequest(t, http.MethodPost, "/api/auth",
		`{"email":"  Admin@Example.COM ","password":"correct-horse-battery"}`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db, h, sm := testSetup(t)
	createTestUser(t, db, "admin@example.com", "correct-horse-battery")

	router := sessionRouter(sm, http.MethodPost, "/api/auth", h.Login)

	req := newJSONRequest(t, http.MethodPost, "/api/auth",
		`{"email":"admin@example.com","password":"wrong"}`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestLoginUnknownEmailSameResponse(t *testing.T) {
	_, h, sm := testSetup(t)

	router := sessionRouter(sm, http.MethodPost, "/api/auth", h.Login)

	req := newJSONRequest(t, http.MethodPost, "/api/auth",
		`{"email":"nobody@example.com","password":"whatever"}`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Unknown email must be indistinguishable from a wrong password.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	_, h, sm := testSetup(t)

	router := sessionRouter(sm, http.MethodPost, "/api/auth", h.Login)

	req := newJSONRequest(t, http.MethodPost, "/api/auth", `{"email":"","password":""}`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	db, h, sm := testSetup(t)
	createTestUser(t, db, "admin@example.com", "correct-horse-battery")

	router := sessionRouter(sm, http.MethodPost, "/api/auth", h.Login)

	var lastCode int
	for i := 0; i < 6; i++ {
		req := newJSONRequest(t, http.MethodPost, "/api/auth",
			`{"email":"admin@example.com","password":"wrong"}`, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after repeated failures, got %d", lastCode)
	}

	// Correct credentials are rejected while the account is locked.
	req := newJSONRequest(t, http.MethodPost, "/api/auth",
		`{"email":"admin@example.com","password":"correct-horse-battery"}`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 on locked account, got %d", rec.Code)
	}
}
