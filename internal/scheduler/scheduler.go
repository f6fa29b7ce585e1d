// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jadofils/company-portifolio/internal/service"
)

// pruneSchedule runs the audit trail prune nightly at 03:10.
const pruneSchedule = "10 3 * * *"

// Scheduler owns the cron runner for background maintenance.
type Scheduler struct {
	cron  *cron.Cron
	audit *service.AuditService
}

// New creates a Scheduler with the audit trail prune job registered.
// retentionDays controls how far back change_log entries are kept.
func New(audit *service.AuditService, retentionDays int) *Scheduler {
	s := &Scheduler{
		cron:  cron.New(),
		audit: audit,
	}

	retention := time.Duration(retentionDays) * 24 * time.Hour
	_, _ = s.cron.AddFunc(pruneSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		removed, err := s.audit.Prune(ctx, retention)
		if err != nil {
			slog.Error("audit trail prune failed", "error", err)
			return
		}
		if removed > 0 {
			slog.Info("pruned audit trail", "removed", removed, "retention_days", retentionDays)
		}
	})

	return s
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
