// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
)

const (
	// SessionCookieName is the cookie carrying the anonymous session token.
	SessionCookieName = "gift_session_id"
	// SessionMaxAge is the cookie lifetime in seconds (7 days).
	SessionMaxAge = 60 * 60 * 24 * 7
)

// SessionID returns the session token from the request cookie, or ""
// when absent.
func SessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie attaches the session cookie to the response.
func SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
