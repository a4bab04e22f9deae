// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/maraionescu/new-home-api/cliparse"
	"github.com/maraionescu/new-home-api/middleware"
	"github.com/maraionescu/new-home-api/models"
)

type LeaderboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLeaderboardHandler(conn *sql.DB, cfg cliparse.Config) *LeaderboardHandler {
	return &LeaderboardHandler{db: conn, cfg: cfg}
}

// Get handles GET /leaderboard
//
// Ranks users by the sum of their active commitment amounts. Cancelled
// commitments do not count, and users with none active do not appear.
// Works without a session; with one, the caller's row is flagged.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := userFromSession(h.db, r)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT c.user_id, u.pseudonym, SUM(c.amount) AS total, COUNT(c.id)
		FROM commitments c
		JOIN users u ON u.id = c.user_id
		WHERE c.status = 'active'
		GROUP BY c.user_id, u.pseudonym
		ORDER BY total DESC, u.pseudonym ASC
		LIMIT 100
	`)
	if err != nil {
		slog.Error("failed to query leaderboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	var currentUserRank *int
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Pseudonym, &e.TotalCommitted, &e.GiftCount); err != nil {
			slog.Error("failed to scan leaderboard entry", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		e.Rank = len(entries) + 1
		if user != nil && e.UserID == user.ID {
			e.IsCurrentUser = true
			rank := e.Rank
			currentUserRank = &rank
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate leaderboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		Leaderboard:     entries,
		CurrentUserRank: currentUserRank,
		TotalUsers:      len(entries),
	})
}
