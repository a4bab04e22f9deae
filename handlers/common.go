// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/maraionescu/new-home-api/middleware"
	"github.com/maraionescu/new-home-api/models"
)

// giftColumns is the canonical column list for scanning gift rows.
// Keep in sync with scanGift.
const giftColumns = `id, name, description, estimated_price, category, priority, wishlist_type,
	is_committed, committed_by, committed_at, image_url, notes,
	receipt_id, already_purchased, reimbursement_method,
	bandcamp_url, artist, album_title, release_type, digital_delivery, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGift(row rowScanner) (models.Gift, error) {
	var g models.Gift
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.EstimatedPrice, &g.Category, &g.Priority, &g.WishlistType,
		&g.IsCommitted, &g.CommittedBy, &g.CommittedAt, &g.ImageURL, &g.Notes,
		&g.ReceiptID, &g.AlreadyPurchased, &g.ReimbursementMethod,
		&g.BandcampURL, &g.Artist, &g.AlbumTitle, &g.ReleaseType, &g.DigitalDelivery, &g.CreatedAt,
	)
	return g, err
}

// userFromSession resolves the session cookie to a user.
// Returns (nil, nil) when the cookie is absent or unknown.
func userFromSession(db *sql.DB, r *http.Request) (*models.User, error) {
	sessionID := middleware.SessionID(r)
	if sessionID == "" {
		return nil, nil
	}

	var user models.User
	err := db.QueryRow(`
		SELECT id, pseudonym, session_id, created_at, last_active, ip_hash
		FROM users WHERE session_id = $1
	`, sessionID).Scan(&user.ID, &user.Pseudonym, &user.SessionID, &user.CreatedAt, &user.LastActive, &user.IPHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
