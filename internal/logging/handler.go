// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides the slog handler used across the
// application. Records at WARN and above are mirrored into the
// change_log table so operational problems show up in the admin
// change feed.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/store"
)

const mirrorBuffer = 64

// Handler wraps a base slog.Handler and mirrors WARN+ records into the
// database. Mirroring is asynchronous: a full buffer drops the mirror
// copy rather than blocking the logger.
type Handler struct {
	base    slog.Handler
	queries *store.Queries
	records chan mirrorRecord
}

type mirrorRecord struct {
	level   string
	message string
	attrs   map[string]string
	at      time.Time
}

// NewHandler creates a Handler mirroring into db. The returned handler
// starts a background writer goroutine that runs for the life of the
// process.
func NewHandler(base slog.Handler, db *sql.DB) *Handler {
	h := &Handler{
		base:    base,
		queries: store.New(db),
		records: make(chan mirrorRecord, mirrorBuffer),
	}
	go h.writeLoop()
	return h
}

// Enabled reports whether the base handler handles records at the
// given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle passes the record to the base handler and queues a mirror
// copy for WARN and above.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	err := h.base.Handle(ctx, record)
	if record.Level >= slog.LevelWarn {
		attrs := make(map[string]string, record.NumAttrs())
		record.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.String()
			return true
		})
		select {
		case h.records <- mirrorRecord{
			level:   record.Level.String(),
			message: record.Message,
			attrs:   attrs,
			at:      record.Time,
		}:
		default:
			// buffer full, keep only the base log line
		}
	}
	return err
}

// WithAttrs returns a handler whose base carries the given attributes.
// The mirror channel is shared.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{base: h.base.WithAttrs(attrs), queries: h.queries, records: h.records}
}

// WithGroup returns a handler whose base carries the given group. The
// mirror channel is shared.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{base: h.base.WithGroup(name), queries: h.queries, records: h.records}
}

func (h *Handler) writeLoop() {
	for rec := range h.records {
		payload, err := json.Marshal(map[string]any{
			"level":   rec.level,
			"message": rec.message,
			"attrs":   rec.attrs,
		})
		if err != nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = h.queries.CreateChange(ctx, store.CreateChangeParams{
			TableName: model.TableSystem,
			RecordID:  0,
			Action:    model.ChangeActionSystem,
			OldData:   "",
			NewData:   string(payload),
			ChangedBy: sql.NullInt64{},
			ChangedAt: rec.at,
		})
		cancel()
	}
}

// ParseLevel maps a configured level name to a slog.Level, defaulting
// to INFO for unknown values.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
