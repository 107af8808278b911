// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package workers

import (
	"context"

	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers enabled by cfg. A zero
// cleanup interval leaves the cleanup worker out entirely.
func NewWorkers(ctx context.Context, repositories *store.Repositories, cfg config.Workers, logger *logger.Logger) *Workers {
	var list []Worker

	if cfg.CleanupInterval > 0 {
		list = append(list, NewCleanupWorker(ctx, repositories.UserRepository, repositories.ResetTokenRepository, cfg, logger))
	}

	return &Workers{workers: list}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
