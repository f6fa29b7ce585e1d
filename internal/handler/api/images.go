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

	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/service"
	"github.com/jadofils/company-portifolio/internal/store"
)

// ImageResponse represents an image in API responses.
type ImageResponse struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Section      string    `json:"section"`
	Subsection   string    `json:"subsection,omitempty"`
	Title        string    `json:"title,omitempty"`
	URL          string    `json:"url"`
	FileSize     int64     `json:"fileSize,omitempty"`
	MimeType     string    `json:"mimeType,omitempty"`
	IsURL        bool      `json:"isUrl"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

func imageToResponse(img store.Image) ImageResponse {
	url := img.FilePath
	if !img.IsUrl {
		url = "/uploads/" + strings.ReplaceAll(img.FilePath, "\\", "/")
	}
	return ImageResponse{
		ID:           img.ID,
		Filename:     img.Filename,
		OriginalName: img.OriginalName,
		Section:      img.Section,
		Subsection:   img.Subsection,
		Title:        img.Title,
		URL:          url,
		FileSize:     img.FileSize,
		MimeType:     img.MimeType,
		IsURL:        img.IsUrl,
		UploadedAt:   img.UploadedAt,
	}
}

// ImageURLRequest is the JSON request body for registering an
// externally hosted image.
type ImageURLRequest struct {
	ImageURL   string `json:"imageUrl"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	Title      string `json:"title"`
}

// ListImages returns active images, optionally filtered by section
// and subsection.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	subsection := r.URL.Query().Get("subsection")
	if section != "" && !model.IsValidSection(section) {
		WriteBadRequest(w, "Unknown section", nil)
		return
	}

	rows := h.images.List(r.Context(), section, subsection)
	out := make([]ImageResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, imageToResponse(row))
	}
	WriteSuccess(w, out, nil)
}

// UploadImage accepts either a multipart file upload or a JSON body
// carrying an external image URL.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		h.uploadImageURL(w, r)
		return
	}

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteValidationError(w, map[string]string{"file": "Image file is required"})
		return
	}
	defer file.Close()

	img, err := h.images.UploadFile(r.Context(), file, header,
		r.FormValue("section"), r.FormValue("subsection"), r.FormValue("title"), currentUserID(r))
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	WriteCreated(w, imageToResponse(img))
}

func (h *Handler) uploadImageURL(w http.ResponseWriter, r *http.Request) {
	var req ImageURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	img, err := h.images.UploadURL(r.Context(), req.ImageURL, req.Section, req.Subsection, req.Title, currentUserID(r))
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	WriteCreated(w, imageToResponse(img))
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		WriteValidationError(w, map[string]string{"file": "File exceeds the maximum upload size"})
	case errors.Is(err, service.ErrUnsupportedType):
		WriteValidationError(w, map[string]string{"file": "Unsupported image type"})
	case errors.Is(err, service.ErrInvalidImageURL):
		WriteValidationError(w, map[string]string{"imageUrl": "Image URL must be an absolute http or https URL"})
	default:
		slog.Error("failed to store image", "error", err)
		WriteInternalError(w, "Failed to store image")
	}
}

// DeleteImage soft-deletes an image. The file stays on disk.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid image ID", nil)
		return
	}

	if err := h.images.Deactivate(r.Context(), id, currentUserID(r)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Image not found")
			return
		}
		slog.Error("failed to deactivate image", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete image")
		return
	}
	WriteSuccess(w, map[string]bool{"success": true}, nil)
}

// DeleteImagesBySection soft-deletes every active image in a section.
func (h *Handler) DeleteImagesBySection(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	if !model.IsValidSection(section) {
		WriteBadRequest(w, "Unknown section", nil)
		return
	}

	n, err := h.images.DeactivateSection(r.Context(), section, currentUserID(r))
	if err != nil {
		slog.Error("failed to deactivate section images", "section", section, "error", err)
		WriteInternalError(w, "Failed to delete images")
		return
	}
	WriteSuccess(w, map[string]int64{"deactivated": n}, nil)
}
