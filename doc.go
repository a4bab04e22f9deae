// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the new-home gift registry API
server.

The registry lets guests browse three wishlists (traditional, receipt
reimbursement, Bandcamp music), claim gifts under an anonymous pseudonym,
and compete on a generosity leaderboard. Claims are first-come
first-served: one active commitment per gift, enforced in the database.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=./gifts.db SESSION_SALT=... go run .

Or with flags:

	go run . -p 8214 -d ./gifts.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_SALT (--session-salt): Secret for privacy-preserving IP hashing

Optional settings:

  - PORT (-p): Server port (default: 8214)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - ADMIN_PASSWORD_HASH (--admin-password-hash): bcrypt hash enabling
    the /admin maintenance routes

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, gifts, commitments, leaderboard)
  - catalog: snapshot sync, seeding and invariant repair
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, session cookie, JSON helpers, admin guard
  - models: Domain and response types
  - validation: Enum and price domain checks
  - pseudonym: Adjective-Animal-NNN name generation
  - auth: Session tokens, IP hashing, admin password hashing
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing
  - metrics: Prometheus counters

The giftsync CLI (cmd/giftsync) drives catalog maintenance against the
same database. See package documentation for each component.
*/
package main
