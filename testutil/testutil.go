// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maraionescu/new-home-api/auth"
	"github.com/maraionescu/new-home-api/cliparse"
	"github.com/maraionescu/new-home-api/db"
	"github.com/maraionescu/new-home-api/middleware"
	"github.com/maraionescu/new-home-api/models"
)

// SetupTestDB creates a fresh SQLite database in a temp dir with the
// full schema. The file vanishes with the test's temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registry_test.db")
	conn, err := db.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8214,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		SessionSalt:  "test-session-salt",
	}
}

// CreateTestUser inserts a user and returns it. The session cookie
// value is the returned user's SessionID.
func CreateTestUser(t *testing.T, conn *sql.DB, pseudonym string) models.User {
	t.Helper()

	sessionID, err := auth.GenerateSessionID()
	if err != nil {
		t.Fatalf("Failed to generate session id: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:         uuid.New().String(),
		Pseudonym:  pseudonym,
		SessionID:  sessionID,
		CreatedAt:  now,
		LastActive: now,
	}

	_, err = conn.Exec(`
		INSERT INTO users (id, pseudonym, session_id, created_at, last_active, ip_hash)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`, user.ID, user.Pseudonym, user.SessionID, user.CreatedAt, user.LastActive)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestGift inserts an uncommitted gift with sensible defaults.
// Price is in bani.
func CreateTestGift(t *testing.T, conn *sql.DB, id, name, wishlistType string, price int64) models.Gift {
	t.Helper()

	gift := models.Gift{
		ID:             id,
		Name:           name,
		EstimatedPrice: price,
		Category:       "kitchen",
		Priority:       models.PriorityNiceToHave,
		WishlistType:   wishlistType,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := conn.Exec(`
		INSERT INTO gifts (id, name, estimated_price, category, priority, wishlist_type, is_committed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
	`, gift.ID, gift.Name, gift.EstimatedPrice, gift.Category, gift.Priority, gift.WishlistType, gift.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test gift: %v", err)
	}

	return gift
}

// CommitTestGift records an active commitment and sets the denormalized
// flags, the way a successful commit would.
func CommitTestGift(t *testing.T, conn *sql.DB, user models.User, gift models.Gift) string {
	t.Helper()

	commitmentID := uuid.New().String()
	now := time.Now().UTC()

	_, err := conn.Exec(`
		INSERT INTO commitments (id, user_id, gift_id, amount, committed_at, status)
		VALUES ($1, $2, $3, $4, $5, 'active')
	`, commitmentID, user.ID, gift.ID, gift.EstimatedPrice, now)
	if err != nil {
		t.Fatalf("Failed to create test commitment: %v", err)
	}

	_, err = conn.Exec(`
		UPDATE gifts SET is_committed = TRUE, committed_by = $1, committed_at = $2 WHERE id = $3
	`, user.Pseudonym, now, gift.ID)
	if err != nil {
		t.Fatalf("Failed to flag test gift: %v", err)
	}

	return commitmentID
}

// MakeRequest creates an HTTP test request. A non-empty sessionID is
// attached as the session cookie.
func MakeRequest(method, path string, body interface{}, sessionID string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionID})
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
