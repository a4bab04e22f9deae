// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/maraionescu/new-home-api/cliparse"
	"github.com/maraionescu/new-home-api/db"
	"github.com/maraionescu/new-home-api/metrics"
	"github.com/maraionescu/new-home-api/middleware"
	"github.com/maraionescu/new-home-api/models"
)

type CommitmentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCommitmentHandler(conn *sql.DB, cfg cliparse.Config) *CommitmentHandler {
	return &CommitmentHandler{db: conn, cfg: cfg}
}

// Commit handles POST /gifts/{id}/commit
//
// The gift row and the commitment ledger move together or not at all:
// the insert and the denormalized-flag update share one transaction,
// and the partial unique index on active commitments decides races.
func (h *CommitmentHandler) Commit(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("id")
	if giftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gift id is required")
		return
	}

	user, err := userFromSession(h.db, r)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		middleware.RequiresIdentityResponse(w)
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	gift, err := scanGift(tx.QueryRow(`SELECT `+giftColumns+` FROM gifts WHERE id = $1`, giftID))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Gift not found")
		return
	}
	if err != nil {
		slog.Error("failed to query gift", "error", err, "gift_id", giftID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if gift.IsCommitted {
		h.conflict(w, gift.CommittedBy)
		return
	}

	now := time.Now().UTC()
	commitmentID := uuid.New().String()
	_, err = tx.Exec(`
		INSERT INTO commitments (id, user_id, gift_id, amount, committed_at, status)
		VALUES ($1, $2, $3, $4, $5, 'active')
	`, commitmentID, user.ID, giftID, gift.EstimatedPrice, now)

	if err != nil {
		if db.IsUniqueViolation(err) {
			// Lost the race: another commit landed between our read and
			// insert. Re-read outside the aborted transaction to report
			// the winner.
			tx.Rollback()
			var holder *string
			if qerr := h.db.QueryRow(`SELECT committed_by FROM gifts WHERE id = $1`, giftID).Scan(&holder); qerr != nil {
				holder = nil
			}
			h.conflict(w, holder)
			return
		}
		slog.Error("failed to insert commitment", "error", err, "gift_id", giftID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to commit to gift")
		return
	}

	_, err = tx.Exec(`
		UPDATE gifts SET is_committed = TRUE, committed_by = $1, committed_at = $2
		WHERE id = $3
	`, user.Pseudonym, now, giftID)
	if err != nil {
		slog.Error("failed to update gift", "error", err, "gift_id", giftID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to commit to gift")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to commit to gift")
		return
	}

	metrics.CommitmentsTotal.WithLabelValues(metrics.OutcomeCommitted).Inc()
	slog.Info("gift committed", "gift_id", giftID, "pseudonym", user.Pseudonym)

	middleware.JSONResponse(w, http.StatusCreated, models.CommitResponse{
		Commitment: models.CommitmentDetail{
			ID:          commitmentID,
			GiftID:      gift.ID,
			GiftName:    gift.Name,
			Amount:      gift.EstimatedPrice,
			CommittedBy: user.Pseudonym,
			CommittedAt: now,
		},
		Message: fmt.Sprintf("Successfully committed to %q (%s)!", gift.Name, models.FormatAmount(gift.EstimatedPrice)),
	})
}

func (h *CommitmentHandler) conflict(w http.ResponseWriter, holder *string) {
	who := "another guest"
	if holder != nil {
		who = *holder
	}
	metrics.CommitmentsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
	middleware.JSONResponse(w, http.StatusConflict, models.ErrorResponse{
		Error:            http.StatusText(http.StatusConflict),
		Message:          fmt.Sprintf("This gift has already been committed by %s", who),
		AlreadyCommitted: true,
	})
}

// Cancel handles DELETE /gifts/{id}/commit
func (h *CommitmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("id")
	if giftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gift id is required")
		return
	}

	user, err := userFromSession(h.db, r)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		middleware.RequiresIdentityResponse(w)
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE commitments SET status = 'cancelled'
		WHERE user_id = $1 AND gift_id = $2 AND status = 'active'
	`, user.ID, giftID)
	if err != nil {
		slog.Error("failed to cancel commitment", "error", err, "gift_id", giftID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel commitment")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel commitment")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No active commitment found for this gift")
		return
	}

	_, err = tx.Exec(`
		UPDATE gifts SET is_committed = FALSE, committed_by = NULL, committed_at = NULL
		WHERE id = $1
	`, giftID)
	if err != nil {
		slog.Error("failed to update gift", "error", err, "gift_id", giftID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel commitment")
		return
	}

	gift, err := scanGift(tx.QueryRow(`SELECT `+giftColumns+` FROM gifts WHERE id = $1`, giftID))
	if err != nil {
		slog.Error("failed to re-read gift", "error", err, "gift_id", giftID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel commitment")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel commitment")
		return
	}

	metrics.CommitmentsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
	slog.Info("commitment cancelled", "gift_id", giftID, "pseudonym", user.Pseudonym)

	middleware.JSONResponse(w, http.StatusOK, models.CancelResponse{Gift: gift})
}

// ListMine handles GET /users/commitments
func (h *CommitmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, err := userFromSession(h.db, r)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		middleware.RequiresIdentityResponse(w)
		return
	}

	rows, err := h.db.Query(`
		SELECT c.id, c.amount, c.status, c.committed_at,
		       g.id, g.name, g.description, g.estimated_price, g.category, g.priority, g.wishlist_type,
		       g.is_committed, g.committed_by, g.committed_at, g.image_url, g.notes,
		       g.receipt_id, g.already_purchased, g.reimbursement_method,
		       g.bandcamp_url, g.artist, g.album_title, g.release_type, g.digital_delivery, g.created_at
		FROM commitments c
		JOIN gifts g ON g.id = c.gift_id
		WHERE c.user_id = $1 AND c.status = 'active'
		ORDER BY c.committed_at
	`, user.ID)
	if err != nil {
		slog.Error("failed to query commitments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	commitments := []models.UserCommitment{}
	for rows.Next() {
		var c models.UserCommitment
		g := &c.Gift
		err := rows.Scan(
			&c.CommitmentID, &c.Amount, &c.Status, &c.CommittedAt,
			&g.ID, &g.Name, &g.Description, &g.EstimatedPrice, &g.Category, &g.Priority, &g.WishlistType,
			&g.IsCommitted, &g.CommittedBy, &g.CommittedAt, &g.ImageURL, &g.Notes,
			&g.ReceiptID, &g.AlreadyPurchased, &g.ReimbursementMethod,
			&g.BandcampURL, &g.Artist, &g.AlbumTitle, &g.ReleaseType, &g.DigitalDelivery, &g.CreatedAt,
		)
		if err != nil {
			slog.Error("failed to scan commitment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate commitments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	grouped := models.GroupedUserCommitments{
		Traditional: []models.UserCommitment{},
		Receipt:     []models.UserCommitment{},
		Bandcamp:    []models.UserCommitment{},
	}
	var totalAmount int64
	for _, c := range commitments {
		totalAmount += c.Amount
		switch c.Gift.WishlistType {
		case models.WishlistTraditional:
			grouped.Traditional = append(grouped.Traditional, c)
		case models.WishlistReceipt:
			grouped.Receipt = append(grouped.Receipt, c)
		case models.WishlistBandcamp:
			grouped.Bandcamp = append(grouped.Bandcamp, c)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserCommitmentsResponse{
		User:        *user,
		Commitments: commitments,
		Grouped:     grouped,
		Stats: models.CommitmentStats{
			Total:       len(commitments),
			TotalAmount: totalAmount,
			ByWishlist: models.WishlistCounts{
				Traditional: len(grouped.Traditional),
				Receipt:     len(grouped.Receipt),
				Bandcamp:    len(grouped.Bandcamp),
			},
		},
	})
}
