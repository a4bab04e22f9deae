// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/maraionescu/new-home-api/catalog"
	"github.com/maraionescu/new-home-api/middleware"
)

type MaintenanceHandler struct {
	db *sql.DB
}

func NewMaintenanceHandler(conn *sql.DB) *MaintenanceHandler {
	return &MaintenanceHandler{db: conn}
}

type invariantReport struct {
	Healthy    bool                `json:"healthy"`
	Violations []catalog.Violation `json:"violations"`
}

type repairReport struct {
	Repaired int `json:"repaired"`
}

// Invariants handles GET /admin/invariants
func (h *MaintenanceHandler) Invariants(w http.ResponseWriter, r *http.Request) {
	violations, err := catalog.Verify(r.Context(), h.db)
	if err != nil {
		slog.Error("invariant check failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to verify invariants")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, invariantReport{
		Healthy:    len(violations) == 0,
		Violations: violations,
	})
}

// Repair handles POST /admin/invariants/repair
func (h *MaintenanceHandler) Repair(w http.ResponseWriter, r *http.Request) {
	repaired, err := catalog.Repair(r.Context(), h.db)
	if err != nil {
		slog.Error("invariant repair failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to repair invariants")
		return
	}
	slog.Info("invariants repaired", "rows", repaired)
	middleware.JSONResponse(w, http.StatusOK, repairReport{Repaired: repaired})
}
