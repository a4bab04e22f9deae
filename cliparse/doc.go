// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8214)
  - DatabaseURL: connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - SessionSalt: secret for IP hashing (required)
  - AdminPasswordHash: bcrypt hash guarding /admin routes (optional)

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	SESSION_SALT        → --session-salt
	ADMIN_PASSWORD_HASH → --admin-password-hash

CLI flags take precedence over environment variables. When
AdminPasswordHash is empty the maintenance routes are not registered
at all.
*/
package cliparse
