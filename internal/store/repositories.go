// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package store

import "github.com/vkrasov/veriauth/internal/logger"

// Repositories aggregates every repository backed by the shared database
// connection.
type Repositories struct {
	UserRepository       UserRepository
	ResetTokenRepository ResetTokenRepository
}

// NewRepositories constructs all repositories on top of the given connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db, log),
		ResetTokenRepository: NewResetTokenRepository(db, log),
	}
}
