// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenRejectsUnknownType(t *testing.T) {
	if _, err := Open("oracle", "whatever"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("First CreateSchema failed: %v", err)
	}
	if err := CreateSchema(conn); err != nil {
		t.Errorf("Second CreateSchema failed: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	conn, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	insert := `INSERT INTO users (id, pseudonym, session_id) VALUES ($1, $2, $3)`
	if _, err := conn.Exec(insert, "u1", "Bold-Fox-001", "s1"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	_, err = conn.Exec(insert, "u2", "Bold-Fox-001", "s2")
	if err == nil {
		t.Fatal("Expected duplicate pseudonym to fail")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("Expected IsUniqueViolation for %v", err)
	}

	if IsUniqueViolation(nil) {
		t.Error("Expected false for nil error")
	}
	if IsUniqueViolation(errors.New("connection reset")) {
		t.Error("Expected false for unrelated error")
	}
}

func TestActiveCommitmentPartialIndex(t *testing.T) {
	conn, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	if _, err := conn.Exec(`INSERT INTO users (id, pseudonym, session_id) VALUES ('u1', 'Bold-Fox-001', 's1')`); err != nil {
		t.Fatalf("Insert user failed: %v", err)
	}

	insert := `INSERT INTO commitments (id, user_id, gift_id, amount, status) VALUES ($1, 'u1', 'g1', 100, $2)`
	if _, err := conn.Exec(insert, "c1", "active"); err != nil {
		t.Fatalf("First active commitment failed: %v", err)
	}

	// A second active commitment for the same gift must hit the index
	_, err = conn.Exec(insert, "c2", "active")
	if !IsUniqueViolation(err) {
		t.Errorf("Expected unique violation for second active commitment, got %v", err)
	}

	// Cancelled rows do not occupy the index
	if _, err := conn.Exec(insert, "c3", "cancelled"); err != nil {
		t.Errorf("Cancelled commitment should not conflict: %v", err)
	}

	// After cancelling the active row, the slot opens up
	if _, err := conn.Exec(`UPDATE commitments SET status = 'cancelled' WHERE id = 'c1'`); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if _, err := conn.Exec(insert, "c4", "active"); err != nil {
		t.Errorf("Expected slot to reopen after cancel: %v", err)
	}
}
