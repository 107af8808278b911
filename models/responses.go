// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package models

// Verification status values returned by [VerificationStatusResponse].
const (
	// StatusNotFound: no account exists for the queried email.
	StatusNotFound = "NOT_FOUND"

	// StatusVerified: the account's email has been confirmed.
	StatusVerified = "VERIFIED"

	// StatusPending: a code is outstanding and has not yet expired.
	StatusPending = "PENDING"

	// StatusExpired: the outstanding code has expired, or the account
	// has no code on record at all.
	StatusExpired = "EXPIRED"
)

// MessageResponse is the generic "it worked" envelope returned by the
// state-mutating auth endpoints.
type MessageResponse struct {
	// Message is a human-readable outcome description
	// (e.g. "verification code sent").
	Message string `json:"message"`
}

// JWTResponse carries the bearer token issued after a successful login.
type JWTResponse struct {
	Token string `json:"token"`
}

// VerificationStatusResponse is the read-only verification snapshot
// returned by GET /auth/verification-status.
type VerificationStatusResponse struct {
	// Status is one of the Status* constants above.
	Status string `json:"status"`

	// Email is the normalized email the snapshot was taken for.
	Email string `json:"email"`

	// ExpiresAt is the RFC 3339 expiry of the outstanding (or stale)
	// code. Empty for NOT_FOUND and VERIFIED, and for EXPIRED accounts
	// that never had a code recorded.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// UserResponse is the public projection of a user account returned by
// GET /auth/me and GET /auth/users.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
