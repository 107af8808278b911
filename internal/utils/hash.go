// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool holds reusable HMAC-SHA256 instances keyed with the application
// hash key. Must be initialized via InitHasherPool before Hash is called.
var hasherPool sync.Pool

// InitHasherPool initializes the package-level pool of HMAC-SHA256 hashers,
// each configured with hashKey. Pooling avoids re-allocating hash state on
// every reset-token digest.
//
// Example usage:
//
//	utils.InitHasherPool("my-secret-key")
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes an HMAC-SHA256 digest of data using a hasher borrowed from
// the pool. The hasher is reset before and after use so no input leaks
// between calls.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString computes an HMAC-SHA256 digest of data keyed with hashKey and
// returns it hex-encoded. Unlike Hash it builds a fresh HMAC instance per
// call, so it works without pool initialization.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
