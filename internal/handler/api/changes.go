// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jadofils/company-portifolio/internal/store"
	"github.com/jadofils/company-portifolio/internal/util"
)

const (
	defaultChangesPerPage = 50
	maxChangesPerPage     = 200
)

// ChangeResponse represents an audit trail entry in API responses.
type ChangeResponse struct {
	ID        int64     `json:"id"`
	TableName string    `json:"tableName"`
	RecordID  int64     `json:"recordId"`
	Action    string    `json:"action"`
	OldData   string    `json:"oldData,omitempty"`
	NewData   string    `json:"newData,omitempty"`
	ChangedBy *int64    `json:"changedBy,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

// ListChanges returns the audit trail, newest first, paginated.
func (h *Handler) ListChanges(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = defaultChangesPerPage
	}
	if perPage > maxChangesPerPage {
		perPage = maxChangesPerPage
	}

	rows, err := h.queries.ListChanges(r.Context(), store.ListChangesParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		slog.Error("failed to list changes", "error", err)
		WriteInternalError(w, "Failed to list changes")
		return
	}

	total, err := h.queries.CountChanges(r.Context())
	if err != nil {
		slog.Error("failed to count changes", "error", err)
		WriteInternalError(w, "Failed to list changes")
		return
	}

	out := make([]ChangeResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ChangeResponse{
			ID:        row.ID,
			TableName: row.TableName,
			RecordID:  row.RecordID,
			Action:    row.Action,
			OldData:   row.OldData,
			NewData:   row.NewData,
			ChangedBy: util.PtrFromNullInt64(row.ChangedBy),
			ChangedAt: row.ChangedAt,
		})
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	WriteSuccess(w, out, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	})
}
