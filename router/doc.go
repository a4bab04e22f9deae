// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires URL patterns to handlers.

# Routes

	GET    /health                    Health check
	POST   /users/session             Create anonymous identity
	GET    /users/session             Current identity (user or null)
	PUT    /users/session             Regenerate pseudonym
	GET    /users/commitments         Own active commitments
	GET    /gifts                     List gifts (filters, grouping, stats)
	GET    /gifts/{id}                Single gift
	POST   /gifts/{id}/commit         Commit to a gift
	DELETE /gifts/{id}/commit         Cancel own commitment
	GET    /leaderboard               Generosity ranking
	GET    /metrics                   Prometheus metrics
	GET    /admin/invariants          Invariant check (basic auth)
	POST   /admin/invariants/repair   Rewrite flags from ledger (basic auth)

Admin routes are only registered when an admin password hash is
configured. Uses Go 1.22+ method-based routing with path parameters.
*/
package router
