// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import "testing"

func TestParseFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-p", "9000",
		"-d", "./test.db",
		"-t", "sqlite",
		"--session-salt", "s3cret",
		"--admin-password-hash", "$2a$10$fake",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "./test.db" {
		t.Errorf("Expected ./test.db, got %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.AdminPasswordHash != "$2a$10$fake" {
		t.Errorf("Unexpected admin hash %s", cfg.AdminPasswordHash)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "8300")
	t.Setenv("DATABASE_URL", "postgres://localhost/gifts")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_SALT", "env-salt")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8300 {
		t.Errorf("Expected port 8300 from env, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected postgres from env, got %s", cfg.DatabaseType)
	}
	if cfg.SessionSalt != "env-salt" {
		t.Errorf("Expected env salt, got %s", cfg.SessionSalt)
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("DATABASE_URL", "./gifts.db")
	t.Setenv("SESSION_SALT", "salt")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8214 {
		t.Errorf("Expected default port 8214, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.AdminPasswordHash != "" {
		t.Errorf("Expected empty admin hash by default, got %s", cfg.AdminPasswordHash)
	}
}

func TestParseFlagsMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SALT", "")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error when DATABASE_URL is missing")
	}

	t.Setenv("DATABASE_URL", "./gifts.db")
	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error when SESSION_SALT is missing")
	}
}

func TestParseFlagsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "./gifts.db")
	t.Setenv("SESSION_SALT", "salt")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}
