// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, response, and error types for the API.

# Domain Types

  - User: anonymous identity (pseudonym + session token)
  - Gift: wishlist entry with denormalized commitment state
  - Commitment: a user's claim on a gift, amount snapshotted at commit time
  - LeaderboardEntry: per-user aggregate of active commitments

The commitments table is the source of truth; Gift.IsCommitted,
Gift.CommittedBy, and Gift.CommittedAt are a transactionally-maintained
cache for cheap read-path filtering.

# Response Types

  - SessionResponse: user (null when no identity)
  - GiftListResponse: gifts, grouped-by-type view, aggregate stats
  - CommitResponse: created commitment + confirmation message
  - CancelResponse: updated gift
  - UserCommitmentsResponse: caller's commitments with gift details
  - LeaderboardResponse: ranked entries + currentUserRank
  - ErrorResponse: machine-readable kind + human message

# Constants

Wishlist types:

	WishlistTraditional = "traditional"
	WishlistReceipt     = "receipt"
	WishlistBandcamp    = "bandcamp"

Priorities:

	PriorityEssential  = "essential"
	PriorityNiceToHave = "nice-to-have"
	PriorityLuxury     = "luxury"
	PriorityDigital    = "digital"

Commitment statuses:

	CommitmentActive    = "active"
	CommitmentCancelled = "cancelled"

Release types (bandcamp gifts):

	ReleaseAlbum = "album"
	ReleaseTrack = "track"
	ReleaseEP    = "ep"

All prices and amounts are integers in minor currency units (bani).
*/
package models
