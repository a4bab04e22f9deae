// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateSessionID()
		if err != nil {
			t.Fatalf("GenerateSessionID failed: %v", err)
		}
		if len(id) != 32 {
			t.Errorf("Expected 32 chars (24 bytes base64, no padding), got %d", len(id))
		}
		if strings.ContainsAny(id, "+/=") {
			t.Errorf("Expected URL-safe token, got %q", id)
		}
		if seen[id] {
			t.Fatalf("Duplicate session id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("192.168.1.10", "salt-a")
	h2 := HashIP("192.168.1.10", "salt-a")
	if h1 != h2 {
		t.Error("Expected deterministic hash for same IP and salt")
	}
	if len(h1) != 16 {
		t.Errorf("Expected 16 hex chars, got %d", len(h1))
	}

	if HashIP("192.168.1.10", "salt-b") == h1 {
		t.Error("Expected different hash with different salt")
	}
	if HashIP("192.168.1.11", "salt-a") == h1 {
		t.Error("Expected different hash for different IP")
	}
}

func TestAdminPasswordRoundTrip(t *testing.T) {
	hash, err := HashAdminPassword("hunter2")
	if err != nil {
		t.Fatalf("HashAdminPassword failed: %v", err)
	}

	if !CheckAdminPassword("hunter2", hash) {
		t.Error("Expected correct password to verify")
	}
	if CheckAdminPassword("hunter3", hash) {
		t.Error("Expected wrong password to fail")
	}
	if CheckAdminPassword("hunter2", "not-a-bcrypt-hash") {
		t.Error("Expected garbage hash to fail")
	}
}
