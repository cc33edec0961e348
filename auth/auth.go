// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAgentKey = errors.New("invalid agent key")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAgentKey creates an HMAC-based key tied to a draft's storage key.
// The key is handed out when a draft is created and required for
// destructive operations on it. Deterministic and verifiable.
func GenerateAgentKey(draftKey, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(draftKey))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAgentKey checks if the provided agent key is valid for the draft
func ValidateAgentKey(draftKey, agentKey, salt string) error {
	expected := GenerateAgentKey(draftKey, salt)
	if !hmac.Equal([]byte(agentKey), []byte(expected)) {
		return ErrInvalidAgentKey
	}
	return nil
}
