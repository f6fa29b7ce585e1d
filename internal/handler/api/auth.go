// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/jadofils/company-portifolio/internal/auth"
	"github.com/jadofils/company-portifolio/internal/middleware"
	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/service"
	"github.com/jadofils/company-portifolio/internal/store"
)

// LoginRequest is the request body for POST /api/auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func userToResponse(u store.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Login authenticates an admin and establishes a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{
			"email":    "Email is required",
			"password": "Password is required",
		})
		return
	}

	if locked, remaining := h.login.IsAccountLocked(req.Email); locked {
		slog.Warn("login attempt on locked account", "email", req.Email)
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			"Account temporarily locked. Try again in "+remaining.Round(time.Minute).String(), nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to look up user", "error", err)
		}
		h.failLogin(w, r, req.Email)
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.failLogin(w, r, req.Email)
		return
	}

	h.login.RecordSuccessfulLogin(req.Email)

	// Renew the token on privilege change to prevent session fixation
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
		WriteInternalError(w, "Failed to establish session")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	if err := h.queries.TouchUserLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		slog.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	h.auditLogin(r, user.ID, model.ChangeActionLogin)
	WriteSuccess(w, LoginResponse{Success: true, User: userToResponse(user)}, nil)
}

func (h *Handler) failLogin(w http.ResponseWriter, r *http.Request, email string) {
	locked, duration := h.login.RecordFailedAttempt(email)
	if locked {
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			"Account temporarily locked for "+duration.String(), nil)
		return
	}
	// Same response for unknown email and wrong password
	WriteUnauthorized(w, "Invalid email or password")
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
		WriteInternalError(w, "Failed to log out")
		return
	}
	if userID != 0 {
		h.auditLogin(r, userID, model.ChangeActionLogout)
	}
	WriteSuccess(w, map[string]bool{"success": true}, nil)
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteSuccess(w, userToResponse(*user), nil)
}

// ChangePasswordRequest is the request body for PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

const minPasswordLength = 8

// ChangePassword updates the authenticated user's password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		WriteValidationError(w, map[string]string{
			"newPassword": "Password must be at least 8 characters",
		})
		return
	}

	ok, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !ok {
		WriteUnauthorized(w, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		WriteInternalError(w, "Failed to update password")
		return
	}

	err = h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		ID:           user.ID,
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		slog.Error("failed to update password", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to update password")
		return
	}

	h.audit.Record(r.Context(), service.Entry{
		Table: model.TableUsers, RecordID: user.ID,
		Action: model.ChangeActionUpdate,
		NewData: map[string]string{"field": "password"},
		UserID:  &user.ID,
	})
	WriteSuccess(w, map[string]bool{"success": true}, nil)
}

// auditLogin records a login or logout with client metadata.
func (h *Handler) auditLogin(r *http.Request, userID int64, action string) {
	ua := useragent.Parse(r.UserAgent())
	meta := map[string]string{
		"ip":      r.RemoteAddr,
		"browser": strings.TrimSpace(ua.Name + " " + ua.Version),
		"os":      ua.OS,
		"device":  ua.Device,
	}
	if h.geo != nil {
		if country := h.geo.Country(r.RemoteAddr); country != "" {
			meta["country"] = country
		}
	}
	h.audit.Record(r.Context(), service.Entry{
		Table: model.TableUsers, RecordID: userID,
		Action:  action,
		NewData: meta,
		UserID:  &userID,
	})
}
