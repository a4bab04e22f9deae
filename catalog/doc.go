// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog reconciles the gift tables with an authoritative JSON
snapshot of the three wishlists.

# Snapshot

A snapshot file carries traditionalWishlist, receiptWishlist and
bandcampWishlist arrays plus optional tierThresholds. Load parses it,
Validate collects every field violation before anything is written.

# Plan / Apply

BuildPlan diffs a snapshot against the database read-only; Apply runs
the same diff inside one transaction:

	snap, _ := catalog.Load("gifts.json")
	plan, err := catalog.Apply(ctx, db, snap, time.Now().UTC())

The rules: gifts without an active commitment are purged and re-created
from the snapshot; gifts with an active commitment keep their row and
their commitment columns, only descriptive fields are refreshed;
committed gifts missing from the snapshot are preserved untouched. The
commitment ledger, never the is_committed flag, decides membership.

# Verify / Repair

Verify lists every disagreement between the denormalized gift flags and
the ledger; Repair rewrites the flags from the ledger.
*/
package catalog
