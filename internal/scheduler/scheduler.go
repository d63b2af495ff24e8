// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic data-directory backup job.
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/estate-go/internal/store"
)

// Scheduler handles scheduled tasks, currently the data backup.
type Scheduler struct {
	files  *store.Files
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(files *store.Files, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		files:  files,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the backup job on the given cron schedule and starts the
// scheduler. An empty schedule disables backups.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		s.logger.Info("backup scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		dir, err := s.files.Backup()
		if err != nil {
			s.logger.Error("scheduled backup failed", "error", err)
			return
		}
		s.logger.Info("scheduled backup completed", "dir", dir)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
