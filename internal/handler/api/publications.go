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

	"github.com/jadofils/company-portifolio/internal/middleware"
	"github.com/jadofils/company-portifolio/internal/service"
	"github.com/jadofils/company-portifolio/internal/store"
)

// PublicationResponse represents a publication in API responses.
type PublicationResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Content       string    `json:"content,omitempty"`
	ContentHTML   string    `json:"contentHtml,omitempty"`
	PdfURL        string    `json:"pdfUrl,omitempty"`
	PublishedDate time.Time `json:"publishedDate"`
	IsActive      bool      `json:"isActive"`
}

func publicationToResponse(p store.Publication) PublicationResponse {
	resp := PublicationResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Content:       p.Content,
		ContentHTML:   p.ContentHtml,
		PublishedDate: p.PublishedDate,
		IsActive:      p.IsActive,
	}
	if p.PdfPath != "" {
		resp.PdfURL = "/uploads/publications/" + p.PdfPath
	}
	return resp
}

// ListPublications returns publications. Authenticated admins also see
// deactivated entries.
func (h *Handler) ListPublications(w http.ResponseWriter, r *http.Request) {
	includeInactive := middleware.GetUser(r) != nil && r.URL.Query().Get("all") == "true"

	rows, err := h.publications.List(r.Context(), includeInactive)
	if err != nil {
		slog.Error("failed to list publications", "error", err)
		WriteInternalError(w, "Failed to list publications")
		return
	}

	out := make([]PublicationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, publicationToResponse(row))
	}
	WriteSuccess(w, out, nil)
}

// GetPublication returns a single publication.
func (h *Handler) GetPublication(w http.ResponseWriter, r *http.Request) {
	row, ok := requireEntityByID(w, r, "publication", func(id int64) (store.Publication, error) {
		return h.publications.Get(r.Context(), id)
	})
	if !ok {
		return
	}
	if !row.IsActive && middleware.GetUser(r) == nil {
		WriteNotFound(w, "Publication not found")
		return
	}
	WriteSuccess(w, publicationToResponse(row), nil)
}

// PublicationRequest is the JSON request body for a text publication.
type PublicationRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Content       string `json:"content"`
	PublishedDate string `json:"publishedDate"`
}

// CreatePublication creates a publication from either a JSON body
// carrying inline markdown content, or a multipart form carrying a PDF.
// A publication has inline content or a PDF, never both.
func (h *Handler) CreatePublication(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.createTextPublication(w, r)
		return
	}

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	content := strings.TrimSpace(r.FormValue("content"))
	publishedDate := parsePublishedDate(r.FormValue("publishedDate"))

	file, header, fileErr := r.FormFile("pdf")
	hasPDF := fileErr == nil

	if hasPDF && content != "" {
		WriteValidationError(w, map[string]string{
			"content": "Provide either inline content or a PDF, not both",
		})
		return
	}

	var (
		row store.Publication
		err error
	)
	if hasPDF {
		defer file.Close()
		row, err = h.publications.CreatePDF(r.Context(), file, header, title, description, publishedDate, currentUserID(r))
	} else {
		row, err = h.publications.CreateText(r.Context(), title, description, content, publishedDate, currentUserID(r))
	}
	if err != nil {
		h.writePublicationError(w, err)
		return
	}
	WriteCreated(w, publicationToResponse(row))
}

func (h *Handler) createTextPublication(w http.ResponseWriter, r *http.Request) {
	var req PublicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	row, err := h.publications.CreateText(r.Context(), req.Title, req.Description,
		strings.TrimSpace(req.Content), parsePublishedDate(req.PublishedDate), currentUserID(r))
	if err != nil {
		h.writePublicationError(w, err)
		return
	}
	WriteCreated(w, publicationToResponse(row))
}

func (h *Handler) writePublicationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPublicationBody):
		WriteValidationError(w, map[string]string{
			"content": "A title and either inline content or a PDF are required",
		})
	case errors.Is(err, service.ErrNotPDF):
		WriteValidationError(w, map[string]string{"pdf": "File must be a PDF document"})
	case errors.Is(err, service.ErrFileTooLarge):
		WriteValidationError(w, map[string]string{"pdf": "File exceeds the maximum upload size"})
	default:
		slog.Error("failed to create publication", "error", err)
		WriteInternalError(w, "Failed to create publication")
	}
}

// DeletePublication soft-deletes a publication.
func (h *Handler) DeletePublication(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid publication ID", nil)
		return
	}

	if err := h.publications.Deactivate(r.Context(), id, currentUserID(r)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Publication not found")
			return
		}
		slog.Error("failed to deactivate publication", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete publication")
		return
	}
	WriteSuccess(w, map[string]bool{"success": true}, nil)
}

func parsePublishedDate(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now()
}
