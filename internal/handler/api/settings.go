// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jadofils/company-portifolio/internal/model"
)

// SettingsResponse holds the raw key/value pairs plus the typed view
// used to render the public site.
type SettingsResponse struct {
	Values map[string]string  `json:"values"`
	Site   model.SiteSettings `json:"site"`
}

// GetSettings returns all settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	values, err := h.settings.All(r.Context())
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		WriteInternalError(w, "Failed to load settings")
		return
	}
	WriteSuccess(w, SettingsResponse{
		Values: values,
		Site:   model.ParseSettings(values),
	}, nil)
}

// UpdateSettingRequest is the request body for updating one setting.
type UpdateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpdateSetting validates and stores a single setting.
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Key == "" {
		WriteValidationError(w, map[string]string{"key": "Key is required"})
		return
	}

	if err := h.settings.Set(r.Context(), req.Key, req.Value, currentUserID(r)); err != nil {
		if model.IsSettingValidationError(err) {
			WriteValidationError(w, map[string]string{req.Key: err.Error()})
			return
		}
		slog.Error("failed to update setting", "key", req.Key, "error", err)
		WriteInternalError(w, "Failed to update setting")
		return
	}
	WriteSuccess(w, map[string]bool{"success": true}, nil)
}

// UpdateSettings validates and stores a batch of settings atomically.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if len(values) == 0 {
		WriteValidationError(w, map[string]string{"body": "At least one setting is required"})
		return
	}

	if err := h.settings.SetMany(r.Context(), values, currentUserID(r)); err != nil {
		if model.IsSettingValidationError(err) {
			WriteValidationError(w, map[string]string{"body": err.Error()})
			return
		}
		slog.Error("failed to update settings", "error", err)
		WriteInternalError(w, "Failed to update settings")
		return
	}
	WriteSuccess(w, map[string]bool{"success": true}, nil)
}
