// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

var ErrInvalidIngestKey = errors.New("invalid ingest key")

// ValidateIngestKey checks a presented ingest key against the configured one
// in constant time. Both sides are hashed first so the comparison does not
// leak the key length.
func ValidateIngestKey(presented, expected string) error {
	if presented == "" || expected == "" {
		return ErrInvalidIngestKey
	}
	a := sha256.Sum256([]byte(presented))
	b := sha256.Sum256([]byte(expected))
	if !hmac.Equal(a[:], b[:]) {
		return ErrInvalidIngestKey
	}
	return nil
}
