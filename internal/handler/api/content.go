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

	"github.com/jadofils/company-portifolio/internal/cache"
	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/service"
	"github.com/jadofils/company-portifolio/internal/store"
)

// ContentResponse represents a content block in API responses.
type ContentResponse struct {
	ID         int64     `json:"id"`
	Section    string    `json:"section"`
	Subsection string    `json:"subsection,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func contentToResponse(c store.CompanyContent) ContentResponse {
	return ContentResponse{
		ID:         c.ID,
		Section:    c.Section,
		Subsection: c.Subsection,
		Title:      c.Title,
		Content:    c.Content,
		ImageURL:   c.ImageUrl,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ContentRequest is the request body for creating or updating content.
type ContentRequest struct {
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl"`
}

func (req *ContentRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if !model.IsValidSection(req.Section) {
		fieldErrors["section"] = "Unknown section"
	}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		fieldErrors["content"] = "Content is required"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListContent returns content blocks, optionally filtered by section.
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	if section != "" && !model.IsValidSection(section) {
		WriteBadRequest(w, "Unknown section", nil)
		return
	}

	rows, err := h.content.List(r.Context(), section)
	if err != nil {
		slog.Error("failed to list content", "section", section, "error", err)
		WriteInternalError(w, "Failed to list content")
		return
	}

	out := make([]ContentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, contentToResponse(row))
	}
	WriteSuccess(w, out, nil)
}

// GetContent returns a single content block.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	row, ok := requireEntityByID(w, r, "content", func(id int64) (store.CompanyContent, error) {
		return h.content.Get(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, contentToResponse(row), nil)
}

// MergedContent returns the unified static-plus-database content list
// for a section. Responses are cached until the section changes.
func (h *Handler) MergedContent(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	if !model.IsValidSection(section) {
		WriteBadRequest(w, "Unknown section", nil)
		return
	}

	key := cache.MergedContentKey(section)
	if h.cache != nil {
		if raw, err := h.cache.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(raw)
			return
		}
	}

	items, err := h.content.Merged(r.Context(), section)
	if err != nil {
		slog.Error("failed to merge content", "section", section, "error", err)
		WriteInternalError(w, "Failed to load content")
		return
	}

	payload, err := json.Marshal(Response{Data: items})
	if err != nil {
		WriteInternalError(w, "Failed to load content")
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, payload, h.cacheTTL); err != nil {
			slog.Warn("failed to cache merged content", "section", section, "error", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// CreateContent creates a new content block.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	row, err := h.content.Create(r.Context(), req.Section, req.Subsection, req.Title, req.Content, req.ImageURL, currentUserID(r))
	if err != nil {
		if errors.Is(err, service.ErrContentExists) {
			WriteValidationError(w, map[string]string{
				"subsection": "Content already exists for this section and subsection",
			})
			return
		}
		slog.Error("failed to create content", "error", err)
		WriteInternalError(w, "Failed to create content")
		return
	}
	WriteCreated(w, contentToResponse(row))
}

// UpdateContent replaces an existing content block.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	row, err := h.content.Update(r.Context(), id, req.Section, req.Subsection, req.Title, req.Content, req.ImageURL, currentUserID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content not found")
			return
		}
		if errors.Is(err, service.ErrContentExists) {
			WriteValidationError(w, map[string]string{
				"subsection": "Content already exists for this section and subsection",
			})
			return
		}
		slog.Error("failed to update content", "id", id, "error", err)
		WriteInternalError(w, "Failed to update content")
		return
	}
	WriteSuccess(w, contentToResponse(row), nil)
}

// DeleteContent permanently removes a content block.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	if err := h.content.Delete(r.Context(), id, currentUserID(r)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content not found")
			return
		}
		slog.Error("failed to delete content", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete content")
		return
	}
	WriteSuccess(w, map[string]bool{"success": true}, nil)
}
