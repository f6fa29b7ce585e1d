// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jadofils/company-portifolio/internal/cache"
	imgproc "github.com/jadofils/company-portifolio/internal/imaging"
	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/store"
	"github.com/jadofils/company-portifolio/internal/util"
)

const (
	// MaxUploadSize limits uploaded files to 10 MB.
	MaxUploadSize = 10 << 20

	listRetryAttempts = 3
	listRetryDelay    = time.Second
)

var (
	// ErrFileTooLarge is returned for uploads over MaxUploadSize.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrUnsupportedType is returned for files that are not a
	// supported image format.
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrInvalidImageURL is returned for external image URLs that are
	// not absolute http or https URLs.
	ErrInvalidImageURL = errors.New("invalid image URL")
)

// ImageService manages image uploads and the image gallery. Hero
// images are capped: uploading past the cap deactivates the oldest
// hero image in the same transaction as the insert.
type ImageService struct {
	db        *sql.DB
	queries   *store.Queries
	audit     *AuditService
	cache     cache.Cacher
	uploadDir string
}

// NewImageService creates an ImageService storing files under uploadDir.
func NewImageService(db *sql.DB, audit *AuditService, c cache.Cacher, uploadDir string) *ImageService {
	return &ImageService{
		db:        db,
		queries:   store.New(db),
		audit:     audit,
		cache:     c,
		uploadDir: uploadDir,
	}
}

// Get returns one image row by ID.
func (s *ImageService) Get(ctx context.Context, id int64) (store.Image, error) {
	return s.queries.GetImageByID(ctx, id)
}

// List returns active images, filtered by section and subsection when
// given. Transient database errors are retried a few times; if the
// list still cannot be fetched, an empty list is returned so public
// pages render without their gallery rather than failing.
func (s *ImageService) List(ctx context.Context, section, subsection string) []store.Image {
	var (
		rows []store.Image
		err  error
	)
	for attempt := 1; attempt <= listRetryAttempts; attempt++ {
		rows, err = s.listOnce(ctx, section, subsection)
		if err == nil {
			return rows
		}
		if attempt < listRetryAttempts {
			select {
			case <-time.After(listRetryDelay):
			case <-ctx.Done():
				slog.Warn("image list canceled", "section", section, "error", ctx.Err())
				return []store.Image{}
			}
		}
	}
	slog.Warn("image list failed, returning empty list",
		"section", section, "subsection", subsection, "error", err)
	return []store.Image{}
}

func (s *ImageService) listOnce(ctx context.Context, section, subsection string) ([]store.Image, error) {
	switch {
	case section == "":
		return s.queries.ListActiveImages(ctx)
	case subsection == "":
		return s.queries.ListActiveImagesBySection(ctx, section)
	default:
		return s.queries.ListActiveImagesBySubsection(ctx, store.ListActiveImagesBySubsectionParams{
			Section:    section,
			Subsection: subsection,
		})
	}
}

// UploadFile stores an uploaded file on disk and records it. For the
// hero section the image is also thumbnailed, and when the section is
// already at its cap the oldest active hero image is deactivated
// atomically with the insert.
func (s *ImageService) UploadFile(ctx context.Context, file multipart.File, header *multipart.FileHeader, section, subsection, title string, userID *int64) (store.Image, error) {
	if !model.IsValidSection(section) {
		return store.Image{}, fmt.Errorf("unknown section %q", section)
	}
	if header.Size > MaxUploadSize {
		return store.Image{}, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return store.Image{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return store.Image{}, ErrFileTooLarge
	}

	mimeType := header.Header.Get("Content-Type")
	if !model.IsSupportedImageType(mimeType) {
		return store.Image{}, ErrUnsupportedType
	}
	if _, err := imgproc.Probe(data); err != nil {
		return store.Image{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	filename := uuid.New().String()[:8] + "_" + util.SafeFilename(header.Filename)
	relPath := filepath.Join(section, filename)
	absPath := filepath.Join(s.uploadDir, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return store.Image{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return store.Image{}, fmt.Errorf("write upload: %w", err)
	}

	img, err := s.insert(ctx, store.CreateImageParams{
		Filename:     filename,
		OriginalName: header.Filename,
		Section:      section,
		Subsection:   subsection,
		Title:        strings.TrimSpace(title),
		FilePath:     relPath,
		FileSize:     int64(len(data)),
		MimeType:     mimeType,
		IsUrl:        false,
		UploadedAt:   time.Now(),
	}, userID)
	if err != nil {
		os.Remove(absPath)
		return store.Image{}, err
	}

	if section == model.SectionHero {
		thumbPath := filepath.Join(s.uploadDir, section, "thumb_"+filename+".jpg")
		if err := imgproc.Thumbnail(data, thumbPath); err != nil {
			slog.Warn("failed to generate hero thumbnail", "image_id", img.ID, "error", err)
		}
	}
	return img, nil
}

// UploadURL records an externally hosted image by URL. No file is
// stored; the URL itself is the image path.
func (s *ImageService) UploadURL(ctx context.Context, imageURL, section, subsection, title string, userID *int64) (store.Image, error) {
	if !model.IsValidSection(section) {
		return store.Image{}, fmt.Errorf("unknown section %q", section)
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return store.Image{}, ErrInvalidImageURL
	}

	return s.insert(ctx, store.CreateImageParams{
		Filename:     filepath.Base(parsed.Path),
		OriginalName: imageURL,
		Section:      section,
		Subsection:   subsection,
		Title:        strings.TrimSpace(title),
		FilePath:     imageURL,
		FileSize:     0,
		MimeType:     "",
		IsUrl:        true,
		UploadedAt:   time.Now(),
	}, userID)
}

// insert records an image row, enforcing the hero cap inside a single
// transaction so concurrent uploads cannot push the section over it.
func (s *ImageService) insert(ctx context.Context, params store.CreateImageParams, userID *int64) (store.Image, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Image{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)
	if params.Section == model.SectionHero {
		count, err := q.CountActiveImagesBySection(ctx, model.SectionHero)
		if err != nil {
			return store.Image{}, fmt.Errorf("count hero images: %w", err)
		}
		if count >= model.HeroImageCap {
			oldest, err := q.OldestActiveImageBySection(ctx, model.SectionHero)
			if err != nil {
				return store.Image{}, fmt.Errorf("find oldest hero image: %w", err)
			}
			if err := q.DeactivateImage(ctx, oldest.ID); err != nil {
				return store.Image{}, fmt.Errorf("deactivate oldest hero image: %w", err)
			}
			s.audit.RecordIn(ctx, q, Entry{
				Table: model.TableImages, RecordID: oldest.ID,
				Action: model.ChangeActionDeactivate, OldData: oldest, UserID: userID,
			})
		}
	}

	img, err := q.CreateImage(ctx, params)
	if err != nil {
		return store.Image{}, err
	}
	if err := tx.Commit(); err != nil {
		return store.Image{}, fmt.Errorf("commit: %w", err)
	}

	s.audit.Record(ctx, Entry{
		Table: model.TableImages, RecordID: img.ID,
		Action: model.ChangeActionCreate, NewData: img, UserID: userID,
	})
	s.invalidate(ctx)
	return img, nil
}

// Deactivate soft-deletes an image. The underlying file stays on disk.
func (s *ImageService) Deactivate(ctx context.Context, id int64, userID *int64) error {
	old, err := s.queries.GetImageByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.queries.DeactivateImage(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, Entry{
		Table: model.TableImages, RecordID: id,
		Action: model.ChangeActionDeactivate, OldData: old, UserID: userID,
	})
	s.invalidate(ctx)
	return nil
}

// DeactivateSection soft-deletes every active image in a section and
// returns how many were affected.
func (s *ImageService) DeactivateSection(ctx context.Context, section string, userID *int64) (int64, error) {
	n, err := s.queries.DeactivateImagesBySection(ctx, section)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.audit.Record(ctx, Entry{
			Table: model.TableImages, RecordID: 0,
			Action: model.ChangeActionDeactivate,
			NewData: map[string]any{"section": section, "deactivated": n},
			UserID:  userID,
		})
		s.invalidate(ctx)
	}
	return n, nil
}

func (s *ImageService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, cache.PrefixImages); err != nil {
		slog.Warn("failed to invalidate image cache", "error", err)
	}
}
