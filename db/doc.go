// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Backends

Open supports two backends behind database/sql:

	conn, err := db.Open("postgres", cfg.DatabaseURL) // lib/pq
	conn, err := db.Open("sqlite", cfg.DatabaseURL)   // modernc.org/sqlite

Postgres is the production backend; sqlite (pure Go, no CGO) serves
local development and tests. All queries use $N placeholders, which
both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes.

# Tables

  - users: anonymous identities (pseudonym, session token, ip hash)
  - gifts: the catalog, with denormalized commitment state
  - commitments: the commitment ledger (source of truth)
  - smoking_sessions: balcony tracking, no API surface
  - config: key/value store (tier thresholds, seed timestamps)

# The Active-Commitment Constraint

A partial unique index enforces at most one active commitment per gift:

	CREATE UNIQUE INDEX idx_commitments_gift_active
	    ON commitments(gift_id) WHERE status = 'active';

This is what makes concurrent commits safe: both transactions insert,
exactly one succeeds, and IsUniqueViolation classifies the loser's
error so the handler can answer 409 instead of 500.
*/
package db
