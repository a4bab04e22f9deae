// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the gift registry API.

# Handlers

  - SessionHandler: anonymous identity (create, fetch, regenerate)
  - GiftHandler: wishlist browsing with filters, grouping and stats
  - CommitmentHandler: commit, cancel, list own commitments
  - LeaderboardHandler: generosity ranking from active commitments
  - MaintenanceHandler: admin invariant check and repair

Each handler holds the shared *sql.DB and the parsed Config. Identity
comes from the gift_session_id cookie; handlers that require it respond
401 with requiresIdentity when it is missing.

# Commitment Consistency

Commit and cancel keep the commitments ledger and the denormalized
columns on gifts (is_committed, committed_by, committed_at) in a single
transaction. A partial unique index on active commitments guarantees at
most one winner per gift under concurrency; the loser gets a 409 naming
the holder.
*/
package handlers
