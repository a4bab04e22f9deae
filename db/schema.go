// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The SQL below sticks to the dialect both backends share: TEXT keys,
// CURRENT_TIMESTAMP defaults, partial indexes. Timestamps are always
// written from Go so no NOW()-style functions appear in queries.
//
// commitments.gift_id carries no foreign key on purpose: catalog
// refreshes delete uncommitted gifts, and cancelled commitments must
// survive the gift rows they once pointed at.
const schema = `
-- Anonymous users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    pseudonym TEXT NOT NULL UNIQUE,
    session_id TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_active TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    ip_hash TEXT
);

CREATE INDEX IF NOT EXISTS idx_users_session_id ON users(session_id);
CREATE INDEX IF NOT EXISTS idx_users_pseudonym ON users(pseudonym);

-- Gift catalog
CREATE TABLE IF NOT EXISTS gifts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    estimated_price INTEGER NOT NULL CHECK (estimated_price >= 0),
    category TEXT NOT NULL,
    priority TEXT NOT NULL CHECK (priority IN ('essential', 'nice-to-have', 'luxury', 'digital')),
    wishlist_type TEXT NOT NULL CHECK (wishlist_type IN ('traditional', 'receipt', 'bandcamp')),
    is_committed BOOLEAN NOT NULL DEFAULT FALSE,
    committed_by TEXT,
    committed_at TIMESTAMP,
    image_url TEXT,
    notes TEXT,
    receipt_id TEXT,
    already_purchased BOOLEAN,
    reimbursement_method TEXT,
    bandcamp_url TEXT,
    artist TEXT,
    album_title TEXT,
    release_type TEXT CHECK (release_type IS NULL OR release_type IN ('album', 'track', 'ep')),
    digital_delivery BOOLEAN,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_gifts_category ON gifts(category);
CREATE INDEX IF NOT EXISTS idx_gifts_priority ON gifts(priority);
CREATE INDEX IF NOT EXISTS idx_gifts_wishlist_type ON gifts(wishlist_type);
CREATE INDEX IF NOT EXISTS idx_gifts_committed ON gifts(is_committed);

-- Commitment ledger (source of truth for gift availability)
CREATE TABLE IF NOT EXISTS commitments (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    gift_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    committed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'cancelled'))
);

-- At most one active commitment per gift. Concurrent commits race on
-- this index: exactly one insert wins, the loser maps to Conflict.
CREATE UNIQUE INDEX IF NOT EXISTS idx_commitments_gift_active
    ON commitments(gift_id) WHERE status = 'active';

CREATE INDEX IF NOT EXISTS idx_commitments_user_id ON commitments(user_id);
CREATE INDEX IF NOT EXISTS idx_commitments_gift_id ON commitments(gift_id);
CREATE INDEX IF NOT EXISTS idx_commitments_status ON commitments(status);

-- Balcony tracking (no API surface; kept for bulk tooling parity)
CREATE TABLE IF NOT EXISTS smoking_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    start_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    end_time TIMESTAMP,
    duration INTEGER,
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed', 'kicked'))
);

CREATE INDEX IF NOT EXISTS idx_smoking_sessions_user_id ON smoking_sessions(user_id);

-- System configuration (upserted, never deleted)
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
