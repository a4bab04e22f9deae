// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Violation is one disagreement between a gift's denormalized flags and
// the commitment ledger.
type Violation struct {
	GiftID  string `json:"giftId"`
	Problem string `json:"problem"`
}

// Verify cross-checks every gift's is_committed/committed_by against
// the active side of the ledger. An empty result means the invariant
// holds.
func Verify(ctx context.Context, q dbtx) ([]Violation, error) {
	violations := []Violation{}

	rows, err := q.QueryContext(ctx, `
		SELECT g.id, g.is_committed, g.committed_by, c.id, u.pseudonym
		FROM gifts g
		LEFT JOIN commitments c ON c.gift_id = g.id AND c.status = 'active'
		LEFT JOIN users u ON u.id = c.user_id
		ORDER BY g.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query gift/ledger join: %w", err)
	}

	for rows.Next() {
		var giftID string
		var isCommitted bool
		var committedBy, commitmentID, holder *string
		if err := rows.Scan(&giftID, &isCommitted, &committedBy, &commitmentID, &holder); err != nil {
			rows.Close()
			return nil, err
		}

		hasActive := commitmentID != nil
		switch {
		case isCommitted && !hasActive:
			violations = append(violations, Violation{GiftID: giftID, Problem: "flagged committed but no active commitment"})
		case !isCommitted && hasActive:
			violations = append(violations, Violation{GiftID: giftID, Problem: "active commitment exists but gift not flagged"})
		case isCommitted && hasActive:
			if committedBy == nil || holder == nil || *committedBy != *holder {
				violations = append(violations, Violation{GiftID: giftID, Problem: "committed_by does not match active commitment holder"})
			}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Orphaned ledger rows: an active commitment whose gift vanished.
	rows, err = q.QueryContext(ctx, `
		SELECT c.gift_id
		FROM commitments c
		LEFT JOIN gifts g ON g.id = c.gift_id
		WHERE c.status = 'active' AND g.id IS NULL
		ORDER BY c.gift_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query orphaned commitments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var giftID string
		if err := rows.Scan(&giftID); err != nil {
			return nil, err
		}
		violations = append(violations, Violation{GiftID: giftID, Problem: "active commitment references missing gift"})
	}
	return violations, rows.Err()
}

// Repair recomputes the denormalized gift flags from the ledger.
// Returns the number of gift rows rewritten.
func Repair(ctx context.Context, conn *sql.DB) (int, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	repaired := 0

	res, err := tx.ExecContext(ctx, `
		UPDATE gifts SET is_committed = FALSE, committed_by = NULL, committed_at = NULL
		WHERE id NOT IN (SELECT gift_id FROM commitments WHERE status = 'active')
		  AND (is_committed = TRUE OR committed_by IS NOT NULL OR committed_at IS NOT NULL)
	`)
	if err != nil {
		return 0, fmt.Errorf("clear stale flags: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		repaired += int(n)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT c.gift_id, u.pseudonym, c.committed_at
		FROM commitments c
		JOIN users u ON u.id = c.user_id
		WHERE c.status = 'active'
	`)
	if err != nil {
		return 0, fmt.Errorf("query active holders: %w", err)
	}

	type holder struct {
		giftID      string
		pseudonym   string
		committedAt sql.NullTime
	}
	var holders []holder
	for rows.Next() {
		var h holder
		if err := rows.Scan(&h.giftID, &h.pseudonym, &h.committedAt); err != nil {
			rows.Close()
			return 0, err
		}
		holders = append(holders, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, h := range holders {
		res, err := tx.ExecContext(ctx, `
			UPDATE gifts SET is_committed = TRUE, committed_by = $1, committed_at = $2
			WHERE id = $3
			  AND (is_committed = FALSE OR committed_by IS NULL OR committed_by <> $4)
		`, h.pseudonym, h.committedAt.Time, h.giftID, h.pseudonym)
		if err != nil {
			return 0, fmt.Errorf("restore flags for gift %s: %w", h.giftID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			repaired += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return repaired, nil
}
