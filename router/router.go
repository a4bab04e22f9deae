// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/maraionescu/new-home-api/cliparse"
	"github.com/maraionescu/new-home-api/handlers"
	"github.com/maraionescu/new-home-api/metrics"
	"github.com/maraionescu/new-home-api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	sessions := handlers.NewSessionHandler(conn, cfg)
	gifts := handlers.NewGiftHandler(conn, cfg)
	commitments := handlers.NewCommitmentHandler(conn, cfg)
	leaderboard := handlers.NewLeaderboardHandler(conn, cfg)

	mux.HandleFunc("GET /health", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	mux.HandleFunc("POST /users/session", middleware.WithLogging(sessions.Create))
	mux.HandleFunc("GET /users/session", middleware.WithLogging(sessions.Get))
	mux.HandleFunc("PUT /users/session", middleware.WithLogging(sessions.Regenerate))
	mux.HandleFunc("GET /users/commitments", middleware.WithLogging(commitments.ListMine))

	mux.HandleFunc("GET /gifts", middleware.WithLogging(gifts.List))
	mux.HandleFunc("GET /gifts/{id}", middleware.WithLogging(gifts.Get))
	mux.HandleFunc("POST /gifts/{id}/commit", middleware.WithLogging(commitments.Commit))
	mux.HandleFunc("DELETE /gifts/{id}/commit", middleware.WithLogging(commitments.Cancel))

	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(leaderboard.Get))

	mux.Handle("GET /metrics", metrics.Handler())

	// Maintenance routes stay unregistered without an admin hash.
	if cfg.AdminPasswordHash != "" {
		maintenance := handlers.NewMaintenanceHandler(conn)
		mux.HandleFunc("GET /admin/invariants",
			middleware.WithLogging(middleware.WithAdminAuth(cfg.AdminPasswordHash, maintenance.Invariants)))
		mux.HandleFunc("POST /admin/invariants/repair",
			middleware.WithLogging(middleware.WithAdminAuth(cfg.AdminPasswordHash, maintenance.Repair)))
	}

	mux.HandleFunc("GET /", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, map[string]string{
			"service": "new-home gift registry API",
			"health":  "/health",
		})
	}))

	return mux
}
