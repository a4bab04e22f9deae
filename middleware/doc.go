// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms),
and increments the Prometheus request counter.

# Session Cookie

Anonymous identity travels in the gift_session_id cookie (7 days,
HttpOnly, SameSite=Strict):

	sessionID := middleware.SessionID(r)
	middleware.SetSessionCookie(w, sessionID)

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Gift not found")
	middleware.RequiresIdentityResponse(w)
	middleware.ValidationErrorResponse(w, violations)

Parse JSON request bodies:

	var req models.SomeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Admin Guard

Maintenance routes use basic auth against a bcrypt hash:

	mux.HandleFunc("GET /admin/invariants",
		middleware.WithAdminAuth(cfg.AdminPasswordHash, handler))

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for privacy-preserving IP hashing on session creation.
*/
package middleware
