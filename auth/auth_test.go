// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(id))
	}

	other, _ := GenerateID(16)
	if id == other {
		t.Error("Expected distinct random IDs")
	}
}

func TestGenerateAgentKey(t *testing.T) {
	key := GenerateAgentKey("34a:0421", "salt")

	if key == "" {
		t.Fatal("Expected non-empty agent key")
	}
	if strings.ContainsAny(key, "=+/") {
		t.Errorf("Expected URL-safe unpadded key, got %q", key)
	}
	if key != GenerateAgentKey("34a:0421", "salt") {
		t.Error("Expected deterministic key for the same inputs")
	}
	if key == GenerateAgentKey("34a:0422", "salt") {
		t.Error("Expected different keys for different draft keys")
	}
	if key == GenerateAgentKey("34a:0421", "other-salt") {
		t.Error("Expected different keys for different salts")
	}
}

func TestValidateAgentKey(t *testing.T) {
	key := GenerateAgentKey("34a:0421", "salt")

	if err := ValidateAgentKey("34a:0421", key, "salt"); err != nil {
		t.Errorf("Expected valid key, got %v", err)
	}
	if err := ValidateAgentKey("34a:0421", "tampered", "salt"); err != ErrInvalidAgentKey {
		t.Errorf("Expected ErrInvalidAgentKey, got %v", err)
	}
	if err := ValidateAgentKey("34a:0422", key, "salt"); err != ErrInvalidAgentKey {
		t.Errorf("Expected key bound to its draft, got %v", err)
	}
	if err := ValidateAgentKey("34a:0421", "", "salt"); err != ErrInvalidAgentKey {
		t.Errorf("Expected empty key rejected, got %v", err)
	}
}
