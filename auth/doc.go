// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session token generation and credential checks.

# Session IDs

Session IDs are random 24-byte (192-bit) secrets:

	sessionID, err := auth.GenerateSessionID()

They are URL-safe base64 encoded without padding and delivered to the
browser in the gift_session_id cookie. Nothing about a session ID is
derivable from the user; it is a pure bearer token.

# IP Hashing

For privacy-preserving tracking without storing addresses:

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.

# Admin Password

Maintenance routes are guarded by HTTP basic auth against a bcrypt
hash configured out of band:

	ok := auth.CheckAdminPassword(password, cfg.AdminPasswordHash)

HashAdminPassword generates the hash for the deployment config.
*/
package auth
