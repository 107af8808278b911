// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package workers

import (
	"context"
	"time"

	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/store"
)

// cleanupWorker periodically removes expired account-lifecycle leftovers:
// unverified accounts whose code expired longer than the configured TTL ago,
// and password-reset tokens past their deadline.
type cleanupWorker struct {
	users         store.UserRepository
	tokens        store.ResetTokenRepository
	interval      time.Duration
	unverifiedTTL time.Duration
	logger        *logger.Logger

	ctx context.Context
	now func() time.Time
}

// NewCleanupWorker constructs the cleanup worker. The worker stops when ctx
// is canceled.
func NewCleanupWorker(ctx context.Context, users store.UserRepository, tokens store.ResetTokenRepository, cfg config.Workers, logger *logger.Logger) Worker {
	return &cleanupWorker{
		users:         users,
		tokens:        tokens,
		interval:      cfg.CleanupInterval,
		unverifiedTTL: cfg.UnverifiedTTL,
		logger:        logger,
		ctx:           ctx,
		now:           time.Now,
	}
}

// Run starts the sweep loop in its own goroutine and returns immediately.
func (w *cleanupWorker) Run() {
	go w.loop()
}

func (w *cleanupWorker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().
		Dur("interval", w.interval).
		Dur("unverified_ttl", w.unverifiedTTL).
		Msg("cleanup worker started")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info().Msg("cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep runs one cleanup pass. Failures are logged and the loop carries on;
// a missed pass is retried naturally on the next tick.
func (w *cleanupWorker) sweep() {
	now := w.now()

	usersDeleted, err := w.users.DeleteStaleUnverified(w.ctx, now.Add(-w.unverifiedTTL))
	if err != nil {
		w.logger.Err(err).Msg("stale unverified account sweep failed")
	} else if usersDeleted > 0 {
		w.logger.Info().Int64("deleted", usersDeleted).Msg("stale unverified accounts removed")
	}

	tokensDeleted, err := w.tokens.DeleteExpired(w.ctx, now)
	if err != nil {
		w.logger.Err(err).Msg("expired reset token sweep failed")
	} else if tokensDeleted > 0 {
		w.logger.Info().Int64("deleted", tokensDeleted).Msg("expired reset tokens removed")
	}
}
