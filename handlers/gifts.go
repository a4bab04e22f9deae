// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/maraionescu/new-home-api/cliparse"
	"github.com/maraionescu/new-home-api/middleware"
	"github.com/maraionescu/new-home-api/models"
	"github.com/maraionescu/new-home-api/validation"
)

type GiftHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewGiftHandler(conn *sql.DB, cfg cliparse.Config) *GiftHandler {
	return &GiftHandler{db: conn, cfg: cfg}
}

// List handles GET /gifts
//
// Optional filters: wishlistType, category, priority, available=true.
// Unknown enum values are rejected up front instead of silently
// matching nothing.
func (h *GiftHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wishlistType := q.Get("wishlistType")
	category := q.Get("category")
	priority := q.Get("priority")
	availableOnly := q.Get("available") == "true"

	var violations []models.FieldError
	if wishlistType != "" {
		if v := validation.WishlistType(wishlistType, "wishlistType"); v != nil {
			violations = append(violations, *v)
		}
	}
	if priority != "" {
		if v := validation.Priority(priority, "priority"); v != nil {
			violations = append(violations, *v)
		}
	}
	if len(violations) > 0 {
		middleware.ValidationErrorResponse(w, violations)
		return
	}

	query := `SELECT ` + giftColumns + ` FROM gifts`
	var conds []string
	var args []any
	if wishlistType != "" {
		args = append(args, wishlistType)
		conds = append(conds, fmt.Sprintf("wishlist_type = $%d", len(args)))
	}
	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if priority != "" {
		args = append(args, priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if availableOnly {
		conds = append(conds, "is_committed = FALSE")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query gifts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	gifts := []models.Gift{}
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			slog.Error("failed to scan gift", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		gifts = append(gifts, g)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate gifts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	grouped := models.GroupedGifts{
		Traditional: []models.Gift{},
		Receipt:     []models.Gift{},
		Bandcamp:    []models.Gift{},
	}
	committed := 0
	for _, g := range gifts {
		if g.IsCommitted {
			committed++
		}
		switch g.WishlistType {
		case models.WishlistTraditional:
			grouped.Traditional = append(grouped.Traditional, g)
		case models.WishlistReceipt:
			grouped.Receipt = append(grouped.Receipt, g)
		case models.WishlistBandcamp:
			grouped.Bandcamp = append(grouped.Bandcamp, g)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.GiftListResponse{
		Gifts:   gifts,
		Grouped: grouped,
		Stats: models.GiftStats{
			Total:     len(gifts),
			Committed: committed,
			Available: len(gifts) - committed,
			ByWishlist: models.WishlistCounts{
				Traditional: len(grouped.Traditional),
				Receipt:     len(grouped.Receipt),
				Bandcamp:    len(grouped.Bandcamp),
			},
		},
	})
}

// Get handles GET /gifts/{id}
func (h *GiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("id")
	if giftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gift id is required")
		return
	}

	gift, err := scanGift(h.db.QueryRow(`SELECT `+giftColumns+` FROM gifts WHERE id = $1`, giftID))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Gift not found")
		return
	}
	if err != nil {
		slog.Error("failed to query gift", "error", err, "gift_id", giftID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, gift)
}
