// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/maraionescu/new-home-api/models"
	"github.com/maraionescu/new-home-api/testutil"
)

func TestCommitLifecycle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCommitmentHandler(conn, cfg)

	alice := testutil.CreateTestUser(t, conn, "Skeptical-Platypus-742")
	bob := testutil.CreateTestUser(t, conn, "Jolly-Quokka-119")
	gift := testutil.CreateTestGift(t, conn, "gift-1", "Stand mixer", models.WishlistTraditional, 85000)

	// Alice commits first
	req := testutil.MakeRequest("POST", "/gifts/gift-1/commit", nil, alice.SessionID)
	req.SetPathValue("id", gift.ID)
	w := httptest.NewRecorder()
	h.Commit(w, req)
	testutil.AssertStatus(t, w, 201)

	var commitResp models.CommitResponse
	testutil.AssertJSON(t, w, &commitResp)
	if commitResp.Commitment.GiftID != gift.ID {
		t.Errorf("Expected gift id %s, got %s", gift.ID, commitResp.Commitment.GiftID)
	}
	if commitResp.Commitment.CommittedBy != alice.Pseudonym {
		t.Errorf("Expected committed by %s, got %s", alice.Pseudonym, commitResp.Commitment.CommittedBy)
	}
	if commitResp.Commitment.Amount != 85000 {
		t.Errorf("Expected amount 85000, got %d", commitResp.Commitment.Amount)
	}

	// Denormalized flags and ledger agree
	var isCommitted bool
	var committedBy *string
	if err := conn.QueryRow(`SELECT is_committed, committed_by FROM gifts WHERE id = $1`, gift.ID).Scan(&isCommitted, &committedBy); err != nil {
		t.Fatalf("Failed to read gift: %v", err)
	}
	if !isCommitted || committedBy == nil || *committedBy != alice.Pseudonym {
		t.Errorf("Gift flags not set after commit: committed=%v by=%v", isCommitted, committedBy)
	}

	// Bob tries the same gift: conflict naming Alice
	req = testutil.MakeRequest("POST", "/gifts/gift-1/commit", nil, bob.SessionID)
	req.SetPathValue("id", gift.ID)
	w = httptest.NewRecorder()
	h.Commit(w, req)
	testutil.AssertStatus(t, w, 409)

	var conflict models.ErrorResponse
	testutil.AssertJSON(t, w, &conflict)
	if !conflict.AlreadyCommitted {
		t.Error("Expected alreadyCommitted flag on conflict")
	}

	// Bob cannot cancel a commitment he does not hold
	req = testutil.MakeRequest("DELETE", "/gifts/gift-1/commit", nil, bob.SessionID)
	req.SetPathValue("id", gift.ID)
	w = httptest.NewRecorder()
	h.Cancel(w, req)
	testutil.AssertStatus(t, w, 404)

	// Alice cancels; the gift opens up again
	req = testutil.MakeRequest("DELETE", "/gifts/gift-1/commit", nil, alice.SessionID)
	req.SetPathValue("id", gift.ID)
	w = httptest.NewRecorder()
	h.Cancel(w, req)
	testutil.AssertStatus(t, w, 200)

	var cancelResp models.CancelResponse
	testutil.AssertJSON(t, w, &cancelResp)
	if cancelResp.Gift.IsCommitted || cancelResp.Gift.CommittedBy != nil {
		t.Error("Expected gift flags cleared after cancel")
	}

	var status string
	if err := conn.QueryRow(`SELECT status FROM commitments WHERE id = $1`, commitResp.Commitment.ID).Scan(&status); err != nil {
		t.Fatalf("Failed to read commitment: %v", err)
	}
	if status != models.CommitmentCancelled {
		t.Errorf("Expected cancelled status, got %s", status)
	}

	// Cancelled means available: Bob can commit now
	req = testutil.MakeRequest("POST", "/gifts/gift-1/commit", nil, bob.SessionID)
	req.SetPathValue("id", gift.ID)
	w = httptest.NewRecorder()
	h.Commit(w, req)
	testutil.AssertStatus(t, w, 201)
}

func TestCommitRequiresIdentity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCommitmentHandler(conn, testutil.GetTestConfig())
	testutil.CreateTestGift(t, conn, "gift-1", "Stand mixer", models.WishlistTraditional, 85000)

	tests := []struct {
		name      string
		sessionID string
	}{
		{"no cookie", ""},
		{"unknown session", "bogus-session-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/gifts/gift-1/commit", nil, tt.sessionID)
			req.SetPathValue("id", "gift-1")
			w := httptest.NewRecorder()
			h.Commit(w, req)
			testutil.AssertStatus(t, w, 401)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if !resp.RequiresIdentity {
				t.Error("Expected requiresIdentity flag")
			}
		})
	}
}

func TestCommitGiftNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCommitmentHandler(conn, testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, conn, "Brave-Otter-003")

	req := testutil.MakeRequest("POST", "/gifts/missing/commit", nil, user.SessionID)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.Commit(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestConcurrentCommitsSingleWinner(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCommitmentHandler(conn, testutil.GetTestConfig())
	gift := testutil.CreateTestGift(t, conn, "gift-race", "Espresso machine", models.WishlistTraditional, 120000)

	const contenders = 8
	users := make([]string, contenders)
	for i := range users {
		users[i] = testutil.CreateTestUser(t, conn, pseudonymForIndex(i)).SessionID
	}

	codes := make([]int, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/gifts/gift-race/commit", nil, users[i])
			req.SetPathValue("id", gift.ID)
			w := httptest.NewRecorder()
			h.Commit(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	winners, losers := 0, 0
	for _, code := range codes {
		switch code {
		case 201:
			winners++
		case 409:
			losers++
		default:
			t.Errorf("Unexpected status %d", code)
		}
	}
	if winners != 1 {
		t.Errorf("Expected exactly 1 winner, got %d", winners)
	}
	if losers != contenders-1 {
		t.Errorf("Expected %d conflicts, got %d", contenders-1, losers)
	}

	var active int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM commitments WHERE gift_id = $1 AND status = 'active'`, gift.ID).Scan(&active); err != nil {
		t.Fatalf("Failed to count commitments: %v", err)
	}
	if active != 1 {
		t.Errorf("Expected 1 active commitment, got %d", active)
	}
}

func pseudonymForIndex(i int) string {
	names := []string{
		"Swift-Fox-001", "Clever-Owl-002", "Brave-Lynx-003", "Wise-Raven-004",
		"Jolly-Moose-005", "Fierce-Hawk-006", "Gentle-Panda-007", "Bold-Wolf-008",
	}
	return names[i%len(names)]
}

func TestListMyCommitments(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCommitmentHandler(conn, testutil.GetTestConfig())

	user := testutil.CreateTestUser(t, conn, "Curious-Lemur-456")
	mixer := testutil.CreateTestGift(t, conn, "gift-1", "Stand mixer", models.WishlistTraditional, 85000)
	album := testutil.CreateTestGift(t, conn, "gift-2", "Favourite album", models.WishlistBandcamp, 4500)
	couch := testutil.CreateTestGift(t, conn, "gift-3", "Couch", models.WishlistReceipt, 250000)

	testutil.CommitTestGift(t, conn, user, mixer)
	testutil.CommitTestGift(t, conn, user, album)

	// A cancelled commitment must not show up
	cancelled := testutil.CommitTestGift(t, conn, user, couch)
	if _, err := conn.Exec(`UPDATE commitments SET status = 'cancelled' WHERE id = $1`, cancelled); err != nil {
		t.Fatalf("Failed to cancel commitment: %v", err)
	}

	req := testutil.MakeRequest("GET", "/users/commitments", nil, user.SessionID)
	w := httptest.NewRecorder()
	h.ListMine(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.UserCommitmentsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Stats.Total != 2 {
		t.Errorf("Expected 2 active commitments, got %d", resp.Stats.Total)
	}
	if resp.Stats.TotalAmount != 89500 {
		t.Errorf("Expected total amount 89500, got %d", resp.Stats.TotalAmount)
	}
	if len(resp.Grouped.Traditional) != 1 || len(resp.Grouped.Bandcamp) != 1 || len(resp.Grouped.Receipt) != 0 {
		t.Errorf("Unexpected grouping: %d/%d/%d",
			len(resp.Grouped.Traditional), len(resp.Grouped.Receipt), len(resp.Grouped.Bandcamp))
	}
}
