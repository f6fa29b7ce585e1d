// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jadofils/company-portifolio/internal/cache"
	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/store"
	"github.com/jadofils/company-portifolio/internal/util"
)

var (
	// ErrPublicationBody is returned when a publication has both
	// inline content and a PDF, or neither.
	ErrPublicationBody = errors.New("publication requires either inline content or a PDF, not both")

	// ErrNotPDF is returned when an uploaded publication file is not
	// a PDF document.
	ErrNotPDF = errors.New("publication file must be a PDF")
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
)

var htmlPolicy = bluemonday.UGCPolicy()

// PublicationService manages publications: markdown articles rendered
// to sanitized HTML, or uploaded PDF documents.
type PublicationService struct {
	queries *store.Queries
	audit   *AuditService
	cache   cache.Cacher
	pdfDir  string
}

// NewPublicationService creates a PublicationService storing PDFs
// under pdfDir.
func NewPublicationService(db *sql.DB, audit *AuditService, c cache.Cacher, pdfDir string) *PublicationService {
	return &PublicationService{queries: store.New(db), audit: audit, cache: c, pdfDir: pdfDir}
}

// Get returns one publication by ID.
func (s *PublicationService) Get(ctx context.Context, id int64) (store.Publication, error) {
	return s.queries.GetPublicationByID(ctx, id)
}

// List returns publications. Admin callers pass includeInactive to see
// soft-deleted entries as well.
func (s *PublicationService) List(ctx context.Context, includeInactive bool) ([]store.Publication, error) {
	if includeInactive {
		return s.queries.ListPublications(ctx)
	}
	return s.queries.ListActivePublications(ctx)
}

// CreateText creates a publication from markdown content. The rendered
// HTML is sanitized and stored alongside the source.
func (s *PublicationService) CreateText(ctx context.Context, title, description, content string, publishedDate time.Time, userID *int64) (store.Publication, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return store.Publication{}, ErrPublicationBody
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return store.Publication{}, fmt.Errorf("render markdown: %w", err)
	}

	row, err := s.queries.CreatePublication(ctx, store.CreatePublicationParams{
		Title:         title,
		Description:   strings.TrimSpace(description),
		Content:       content,
		ContentHtml:   htmlPolicy.Sanitize(buf.String()),
		PdfPath:       "",
		PublishedDate: publishedDate,
	})
	if err != nil {
		return store.Publication{}, err
	}

	s.audit.Record(ctx, Entry{
		Table: model.TablePublications, RecordID: row.ID,
		Action: model.ChangeActionCreate, NewData: row, UserID: userID,
	})
	s.invalidate(ctx)
	return row, nil
}

// CreatePDF creates a publication backed by an uploaded PDF document.
func (s *PublicationService) CreatePDF(ctx context.Context, file multipart.File, header *multipart.FileHeader, title, description string, publishedDate time.Time, userID *int64) (store.Publication, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Publication{}, ErrPublicationBody
	}
	if header.Size > MaxUploadSize {
		return store.Publication{}, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return store.Publication{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return store.Publication{}, ErrFileTooLarge
	}
	// %PDF magic, the content type header alone is client-controlled.
	if header.Header.Get("Content-Type") != model.MimeTypePDF || !bytes.HasPrefix(data, []byte("%PDF")) {
		return store.Publication{}, ErrNotPDF
	}

	filename := uuid.New().String()[:8] + "_" + util.SafeFilename(header.Filename)
	absPath := filepath.Join(s.pdfDir, filename)
	if err := os.MkdirAll(s.pdfDir, 0o755); err != nil {
		return store.Publication{}, fmt.Errorf("create pdf dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return store.Publication{}, fmt.Errorf("write pdf: %w", err)
	}

	row, err := s.queries.CreatePublication(ctx, store.CreatePublicationParams{
		Title:         title,
		Description:   strings.TrimSpace(description),
		Content:       "",
		ContentHtml:   "",
		PdfPath:       filename,
		PublishedDate: publishedDate,
	})
	if err != nil {
		os.Remove(absPath)
		return store.Publication{}, err
	}

	s.audit.Record(ctx, Entry{
		Table: model.TablePublications, RecordID: row.ID,
		Action: model.ChangeActionCreate, NewData: row, UserID: userID,
	})
	s.invalidate(ctx)
	return row, nil
}

// Deactivate soft-deletes a publication. The PDF, when one exists,
// stays on disk.
func (s *PublicationService) Deactivate(ctx context.Context, id int64, userID *int64) error {
	old, err := s.queries.GetPublicationByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.queries.DeactivatePublication(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, Entry{
		Table: model.TablePublications, RecordID: id,
		Action: model.ChangeActionDeactivate, OldData: old, UserID: userID,
	})
	s.invalidate(ctx)
	return nil
}

func (s *PublicationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PublicationsKey()); err != nil {
		slog.Warn("failed to invalidate publications cache", "error", err)
	}
}
