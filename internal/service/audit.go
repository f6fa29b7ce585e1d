// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic above the store layer: the
// audit trail, content merging, image uploads with the hero cap,
// settings and publications.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jadofils/company-portifolio/internal/store"
	"github.com/jadofils/company-portifolio/internal/util"
)

// AuditService writes change_log entries. Every mutation that goes
// through the API is recorded here.
type AuditService struct {
	queries *store.Queries
}

// NewAuditService creates an AuditService bound to the database.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{queries: store.New(db)}
}

// Entry describes one mutation to record.
type Entry struct {
	Table    string
	RecordID int64
	Action   string
	OldData  any // marshaled to JSON; nil records an empty string
	NewData  any
	UserID   *int64
}

// Record appends an audit entry. Failures are logged, not propagated:
// an audit write must never fail the mutation it describes.
func (s *AuditService) Record(ctx context.Context, e Entry) {
	s.RecordIn(ctx, s.queries, e)
}

// RecordIn appends an audit entry using the given queries, so callers
// inside a transaction can commit the entry atomically with the change.
func (s *AuditService) RecordIn(ctx context.Context, q *store.Queries, e Entry) {
	_, err := q.CreateChange(ctx, store.CreateChangeParams{
		TableName: e.Table,
		RecordID:  e.RecordID,
		Action:    e.Action,
		OldData:   marshalData(e.OldData),
		NewData:   marshalData(e.NewData),
		ChangedBy: util.NullInt64FromPtr(e.UserID),
		ChangedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to record audit entry",
			"table", e.Table, "record_id", e.RecordID, "action", e.Action, "error", err)
	}
}

// Prune removes audit entries older than the retention period and
// returns the number removed.
func (s *AuditService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.queries.DeleteChangesBefore(ctx, cutoff)
}

func marshalData(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
