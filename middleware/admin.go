// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"

	"github.com/maraionescu/new-home-api/auth"
)

// WithAdminAuth guards a handler with HTTP basic auth checked against a
// bcrypt hash. The username is ignored; only the password matters.
func WithAdminAuth(passwordHash string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, password, ok := r.BasicAuth()
		if !ok || !auth.CheckAdminPassword(password, passwordHash) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Maintenance"`)
			ErrorResponse(w, http.StatusUnauthorized, "admin credentials required")
			return
		}
		next(w, r)
	}
}
