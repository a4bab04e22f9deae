// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/maraionescu/new-home-api/auth"
	"github.com/maraionescu/new-home-api/cliparse"
	"github.com/maraionescu/new-home-api/db"
	"github.com/maraionescu/new-home-api/middleware"
	"github.com/maraionescu/new-home-api/models"
	"github.com/maraionescu/new-home-api/pseudonym"
)

type SessionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSessionHandler(conn *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{db: conn, cfg: cfg}
}

// Create handles POST /users/session
//
// Mints a fresh anonymous identity: random pseudonym, opaque session
// token in a cookie, hashed client IP. No credentials involved.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSalt)
	now := time.Now().UTC()

	// Two sessions created in the same instant can draw the same
	// pseudonym; the unique constraint catches it, so redraw both the
	// pseudonym and the token on each attempt.
	var user *models.User
	for attempt := 0; attempt < 3; attempt++ {
		sessionID, err := auth.GenerateSessionID()
		if err != nil {
			slog.Error("failed to generate session id", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}

		existing, err := h.existingPseudonyms()
		if err != nil {
			slog.Error("failed to load pseudonyms", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}

		candidate := &models.User{
			ID:         uuid.New().String(),
			Pseudonym:  pseudonym.GenerateUnique(existing, 10),
			SessionID:  sessionID,
			CreatedAt:  now,
			LastActive: now,
			IPHash:     &ipHash,
		}

		_, err = h.db.Exec(`
			INSERT INTO users (id, pseudonym, session_id, created_at, last_active, ip_hash)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, candidate.ID, candidate.Pseudonym, candidate.SessionID, candidate.CreatedAt, candidate.LastActive, candidate.IPHash)
		if err == nil {
			user = candidate
			break
		}
		if !db.IsUniqueViolation(err) {
			slog.Error("failed to insert user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}
	}
	if user == nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.SetSessionCookie(w, user.SessionID)
	slog.Info("session created", "pseudonym", user.Pseudonym)
	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{User: user})
}

// Get handles GET /users/session
//
// Returns {"user": null} rather than an error when no session exists,
// so the client can probe without triggering error handling.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := userFromSession(h.db, r)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{User: nil})
		return
	}

	now := time.Now().UTC()
	if _, err := h.db.Exec(`UPDATE users SET last_active = $1 WHERE id = $2`, now, user.ID); err != nil {
		slog.Error("failed to touch last_active", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	user.LastActive = now

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{User: user})
}

// Regenerate handles PUT /users/session
//
// Re-rolls the pseudonym. Refused once the user holds any commitment,
// active or cancelled: the pseudonym is denormalized onto gift rows and
// public history should not be rewritten.
func (h *SessionHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
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

	var count int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM commitments WHERE user_id = $1`, user.ID).Scan(&count); err != nil {
		slog.Error("failed to count commitments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		middleware.JSONResponse(w, http.StatusForbidden, models.ErrorResponse{
			Error:   http.StatusText(http.StatusForbidden),
			Message: "Cannot change identity after committing to gifts",
			Reason:  "commitment_exists",
		})
		return
	}

	existing, err := h.existingPseudonyms()
	if err != nil {
		slog.Error("failed to load pseudonyms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	delete(existing, user.Pseudonym)

	now := time.Now().UTC()
	fresh := pseudonym.GenerateUnique(existing, 10)
	if _, err := h.db.Exec(`
		UPDATE users SET pseudonym = $1, last_active = $2 WHERE id = $3
	`, fresh, now, user.ID); err != nil {
		slog.Error("failed to update pseudonym", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to regenerate pseudonym")
		return
	}

	slog.Info("pseudonym regenerated", "old", user.Pseudonym, "new", fresh)
	user.Pseudonym = fresh
	user.LastActive = now
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{User: user})
}

func (h *SessionHandler) existingPseudonyms() (map[string]bool, error) {
	rows, err := h.db.Query(`SELECT pseudonym FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		existing[p] = true
	}
	return existing, rows.Err()
}
