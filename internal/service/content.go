// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"

	"github.com/jadofils/company-portifolio/internal/cache"
	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/store"
)

// contentPolicy strips markup that should never reach stored content.
var contentPolicy = bluemonday.UGCPolicy()

var titleFolder = cases.Fold()

// ErrContentExists is returned when a content block for a
// (section, subsection) pair already exists.
var ErrContentExists = errors.New("content block already exists for section and subsection")

// ContentItem is one entry of a merged content list: either a database
// row or a static fallback block.
type ContentItem struct {
	ID         *int64     `json:"id,omitempty"`
	Section    string     `json:"section"`
	Subsection string     `json:"subsection"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	Source     string     `json:"source"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// ContentService manages company content blocks and the merged view
// of static defaults and database rows.
type ContentService struct {
	queries *store.Queries
	audit   *AuditService
	cache   cache.Cacher
}

// NewContentService creates a ContentService.
func NewContentService(db *sql.DB, audit *AuditService, c cache.Cacher) *ContentService {
	return &ContentService{queries: store.New(db), audit: audit, cache: c}
}

// List returns content rows, filtered by section when one is given.
func (s *ContentService) List(ctx context.Context, section string) ([]store.CompanyContent, error) {
	if section == "" {
		return s.queries.ListContent(ctx)
	}
	return s.queries.ListContentBySection(ctx, section)
}

// Get returns a single content block by ID.
func (s *ContentService) Get(ctx context.Context, id int64) (store.CompanyContent, error) {
	return s.queries.GetContentByID(ctx, id)
}

// Create inserts a new content block. The (section, subsection) pair
// must not already exist.
func (s *ContentService) Create(ctx context.Context, section, subsection, title, content, imageURL string, userID *int64) (store.CompanyContent, error) {
	if !model.IsValidSection(section) {
		return store.CompanyContent{}, fmt.Errorf("unknown section %q", section)
	}
	_, err := s.queries.GetContentBySectionSubsection(ctx, store.GetContentBySectionSubsectionParams{
		Section:    section,
		Subsection: subsection,
	})
	if err == nil {
		return store.CompanyContent{}, ErrContentExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.CompanyContent{}, fmt.Errorf("check existing content: %w", err)
	}

	row, err := s.queries.CreateContent(ctx, store.CreateContentParams{
		Section:    section,
		Subsection: subsection,
		Title:      strings.TrimSpace(title),
		Content:    contentPolicy.Sanitize(content),
		ImageUrl:   strings.TrimSpace(imageURL),
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		return store.CompanyContent{}, err
	}

	s.audit.Record(ctx, Entry{
		Table: model.TableCompanyContent, RecordID: row.ID,
		Action: model.ChangeActionCreate, NewData: row, UserID: userID,
	})
	s.invalidate(ctx, section)
	return row, nil
}

// Update replaces an existing content block.
func (s *ContentService) Update(ctx context.Context, id int64, section, subsection, title, content, imageURL string, userID *int64) (store.CompanyContent, error) {
	if !model.IsValidSection(section) {
		return store.CompanyContent{}, fmt.Errorf("unknown section %q", section)
	}
	old, err := s.queries.GetContentByID(ctx, id)
	if err != nil {
		return store.CompanyContent{}, err
	}

	// Moving onto another row's (section, subsection) pair would trip
	// the unique index; surface it the same way Create does.
	existing, err := s.queries.GetContentBySectionSubsection(ctx, store.GetContentBySectionSubsectionParams{
		Section:    section,
		Subsection: subsection,
	})
	if err == nil && existing.ID != id {
		return store.CompanyContent{}, ErrContentExists
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return store.CompanyContent{}, fmt.Errorf("check existing content: %w", err)
	}

	row, err := s.queries.UpdateContent(ctx, store.UpdateContentParams{
		ID:         id,
		Section:    section,
		Subsection: subsection,
		Title:      strings.TrimSpace(title),
		Content:    contentPolicy.Sanitize(content),
		ImageUrl:   strings.TrimSpace(imageURL),
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		return store.CompanyContent{}, err
	}

	s.audit.Record(ctx, Entry{
		Table: model.TableCompanyContent, RecordID: id,
		Action: model.ChangeActionUpdate, OldData: old, NewData: row, UserID: userID,
	})
	s.invalidate(ctx, old.Section)
	if row.Section != old.Section {
		s.invalidate(ctx, row.Section)
	}
	return row, nil
}

// Delete permanently removes a content block. Content is hard-deleted:
// the static fallback takes over once the row is gone.
func (s *ContentService) Delete(ctx context.Context, id int64, userID *int64) error {
	old, err := s.queries.GetContentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.queries.DeleteContent(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, Entry{
		Table: model.TableCompanyContent, RecordID: id,
		Action: model.ChangeActionDelete, OldData: old, UserID: userID,
	})
	s.invalidate(ctx, old.Section)
	return nil
}

// Merged returns the unified content list for a section: database rows
// merged with static fallback blocks, database rows shadowing their
// static counterparts.
func (s *ContentService) Merged(ctx context.Context, section string) ([]ContentItem, error) {
	rows, err := s.queries.ListContentBySection(ctx, section)
	if err != nil {
		return nil, err
	}
	return MergeContent(model.StaticDefaults(section), rows), nil
}

// MergeContent folds database rows into the static defaults for a
// section. A database row shadows a static block when the subsection
// matches, the title matches exactly, or the titles match after
// normalization. Remaining database rows are appended after the
// static list in store order.
func MergeContent(defaults []model.StaticContent, rows []store.CompanyContent) []ContentItem {
	used := make(map[int64]bool, len(rows))
	items := make([]ContentItem, 0, len(defaults)+len(rows))

	for _, def := range defaults {
		matched := false
		for i := range rows {
			row := rows[i]
			if used[row.ID] {
				continue
			}
			if row.Subsection == def.Subsection ||
				row.Title == def.Title ||
				normalizeTitle(row.Title) == normalizeTitle(def.Title) {
				used[row.ID] = true
				items = append(items, fromRow(row))
				matched = true
				break
			}
		}
		if !matched {
			items = append(items, ContentItem{
				Section:    def.Section,
				Subsection: def.Subsection,
				Title:      def.Title,
				Content:    def.Content,
				ImageURL:   def.ImageURL,
				Source:     "static",
			})
		}
	}

	for i := range rows {
		if used[rows[i].ID] {
			continue
		}
		items = append(items, fromRow(rows[i]))
	}
	return items
}

func fromRow(row store.CompanyContent) ContentItem {
	id := row.ID
	updated := row.UpdatedAt
	return ContentItem{
		ID:         &id,
		Section:    row.Section,
		Subsection: row.Subsection,
		Title:      row.Title,
		Content:    row.Content,
		ImageURL:   row.ImageUrl,
		Source:     "database",
		UpdatedAt:  &updated,
	}
}

// normalizeTitle lowercases a title and strips whitespace and
// ampersands, so "Vision & Mission" matches "vision and mission"
// stored as "VisionMission" variants.
func normalizeTitle(title string) string {
	folded := titleFolder.String(title)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch r {
		case ' ', '\t', '\n', '&':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *ContentService) invalidate(ctx context.Context, section string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, cache.PrefixContent); err != nil {
		slog.Warn("failed to invalidate content cache", "section", section, "error", err)
	}
}
