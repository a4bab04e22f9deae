// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/maraionescu/new-home-api/models"
)

// ValidationError aggregates snapshot field violations. Apply and Seed
// return it without having written anything.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("snapshot failed validation with %d violation(s)", len(e.Fields))
}

// Apply reconciles the database with the snapshot in one transaction:
// purge uncommitted gifts absent or present alike, refresh descriptive
// fields of committed gifts, re-insert the snapshot, and record the
// sync in config. Commitment state is never touched.
func Apply(ctx context.Context, conn *sql.DB, snap *Snapshot, now time.Time) (*Plan, error) {
	if violations := snap.Validate(); len(violations) > 0 {
		return nil, &ValidationError{Fields: violations}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	plan, err := BuildPlan(ctx, tx, snap)
	if err != nil {
		return nil, err
	}

	// The ledger is the source of truth for what survives the purge.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM gifts
		WHERE id NOT IN (SELECT gift_id FROM commitments WHERE status = 'active')
	`)
	if err != nil {
		return nil, fmt.Errorf("purge uncommitted gifts: %w", err)
	}

	updates := make(map[string]bool, len(plan.Updates))
	for _, id := range plan.Updates {
		updates[id] = true
	}

	holders, err := activeHolders(ctx, tx)
	if err != nil {
		return nil, err
	}

	for _, g := range snap.Gifts() {
		if updates[g.ID] {
			// Committed gift: refresh descriptive fields only. The
			// wishlist type and commitment columns stay as they are.
			_, err = tx.ExecContext(ctx, `
				UPDATE gifts SET name = $1, description = $2, estimated_price = $3,
					category = $4, priority = $5, image_url = $6, notes = $7
				WHERE id = $8
			`, g.Name, g.Description, g.EstimatedPrice, g.Category, g.Priority, g.ImageURL, g.Notes, g.ID)
			if err != nil {
				return nil, fmt.Errorf("update gift %s: %w", g.ID, err)
			}
			continue
		}

		var holder *activeHolder
		if h, ok := holders[g.ID]; ok {
			holder = &h
		}
		if _, err := insertGift(ctx, tx, g, holder, now); err != nil {
			return nil, fmt.Errorf("insert gift %s: %w", g.ID, err)
		}
	}

	if err := upsertSyncConfig(ctx, tx, snap, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Seed loads the snapshot into an empty or partially seeded database.
// Existing rows are left alone. Returns the number of gifts inserted.
func Seed(ctx context.Context, conn *sql.DB, snap *Snapshot, now time.Time) (int, error) {
	if violations := snap.Validate(); len(violations) > 0 {
		return 0, &ValidationError{Fields: violations}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	holders, err := activeHolders(ctx, tx)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, g := range snap.Gifts() {
		var holder *activeHolder
		if h, ok := holders[g.ID]; ok {
			holder = &h
		}
		n, err := insertGift(ctx, tx, g, holder, now)
		if err != nil {
			return 0, fmt.Errorf("seed gift %s: %w", g.ID, err)
		}
		if n > 0 {
			inserted++
		}
	}

	if err := upsertSyncConfig(ctx, tx, snap, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// activeHolder is the ledger side of the denormalized gift columns.
type activeHolder struct {
	pseudonym   string
	committedAt time.Time
}

func activeHolders(ctx context.Context, q dbtx) (map[string]activeHolder, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.gift_id, u.pseudonym, c.committed_at
		FROM commitments c
		JOIN users u ON u.id = c.user_id
		WHERE c.status = 'active'
	`)
	if err != nil {
		return nil, fmt.Errorf("query active holders: %w", err)
	}
	defer rows.Close()

	holders := make(map[string]activeHolder)
	for rows.Next() {
		var giftID string
		var h activeHolder
		if err := rows.Scan(&giftID, &h.pseudonym, &h.committedAt); err != nil {
			return nil, err
		}
		holders[giftID] = h
	}
	return holders, rows.Err()
}

func insertGift(ctx context.Context, tx *sql.Tx, g models.Gift, holder *activeHolder, now time.Time) (int64, error) {
	// The drift case: an active commitment exists but the gift row went
	// missing, so the insert restores the flags from the ledger instead
	// of waiting for a repair run. ON CONFLICT DO NOTHING keeps re-runs
	// idempotent.
	isCommitted := false
	var committedBy *string
	var committedAt *time.Time
	if holder != nil {
		isCommitted = true
		committedBy = &holder.pseudonym
		committedAt = &holder.committedAt
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO gifts (id, name, description, estimated_price, category, priority, wishlist_type,
			is_committed, committed_by, committed_at, image_url, notes,
			receipt_id, already_purchased, reimbursement_method,
			bandcamp_url, artist, album_title, release_type, digital_delivery, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (id) DO NOTHING
	`, g.ID, g.Name, g.Description, g.EstimatedPrice, g.Category, g.Priority, g.WishlistType,
		isCommitted, committedBy, committedAt, g.ImageURL, g.Notes,
		g.ReceiptID, g.AlreadyPurchased, g.ReimbursementMethod,
		g.BandcampURL, g.Artist, g.AlbumTitle, g.ReleaseType, g.DigitalDelivery, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func upsertSyncConfig(ctx context.Context, tx *sql.Tx, snap *Snapshot, now time.Time) error {
	if len(snap.TierThresholds) > 0 {
		thresholds, err := json.Marshal(snap.TierThresholds)
		if err != nil {
			return fmt.Errorf("marshal tier thresholds: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO config (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value
		`, models.ConfigTierThresholds, string(thresholds))
		if err != nil {
			return fmt.Errorf("upsert tier thresholds: %w", err)
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, models.ConfigLastSeedTimestamp, now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert seed timestamp: %w", err)
	}
	return nil
}
