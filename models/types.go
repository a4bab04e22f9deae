// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Wishlist type constants
const (
	WishlistTraditional = "traditional"
	WishlistReceipt     = "receipt"
	WishlistBandcamp    = "bandcamp"
)

// Gift priority constants
const (
	PriorityEssential  = "essential"
	PriorityNiceToHave = "nice-to-have"
	PriorityLuxury     = "luxury"
	PriorityDigital    = "digital"
)

// Commitment status constants
const (
	CommitmentActive    = "active"
	CommitmentCancelled = "cancelled"
)

// Bandcamp release type constants
const (
	ReleaseAlbum = "album"
	ReleaseTrack = "track"
	ReleaseEP    = "ep"
)

// Config keys
const (
	ConfigTierThresholds    = "tier_thresholds"
	ConfigLastSeedTimestamp = "last_seed_timestamp"
)

// Domain types

type User struct {
	ID         string    `json:"id"`
	Pseudonym  string    `json:"pseudonym"`
	SessionID  string    `json:"-"` // Never expose in JSON
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
	IPHash     *string   `json:"-"` // Never expose in JSON
}

type Gift struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	EstimatedPrice int64      `json:"estimatedPrice"` // minor currency units (bani)
	Category       string     `json:"category"`
	Priority       string     `json:"priority"`
	WishlistType   string     `json:"wishlistType"`
	IsCommitted    bool       `json:"isCommitted"`
	CommittedBy    *string    `json:"committedBy,omitempty"` // pseudonym snapshot
	CommittedAt    *time.Time `json:"committedAt,omitempty"`
	ImageURL       *string    `json:"imageUrl,omitempty"`
	Notes          *string    `json:"notes,omitempty"`

	// Receipt-specific fields
	ReceiptID           *string `json:"receiptId,omitempty"`
	AlreadyPurchased    *bool   `json:"alreadyPurchased,omitempty"`
	ReimbursementMethod *string `json:"reimbursementMethod,omitempty"`

	// Bandcamp-specific fields
	BandcampURL     *string `json:"bandcampUrl,omitempty"`
	Artist          *string `json:"artist,omitempty"`
	AlbumTitle      *string `json:"albumTitle,omitempty"`
	ReleaseType     *string `json:"releaseType,omitempty"`
	DigitalDelivery *bool   `json:"digitalDelivery,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Commitment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	GiftID      string    `json:"giftId"`
	Amount      int64     `json:"amount"` // copied from gift price at commit time
	CommittedAt time.Time `json:"committedAt"`
	Status      string    `json:"status"`
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"userId"`
	Pseudonym      string `json:"pseudonym"`
	TotalCommitted int64  `json:"totalCommitted"`
	GiftCount      int    `json:"giftCount"`
	IsCurrentUser  bool   `json:"isCurrentUser"`
}

// Response types

type SessionResponse struct {
	User *User `json:"user"`
}

type GiftListResponse struct {
	Gifts   []Gift       `json:"gifts"`
	Grouped GroupedGifts `json:"grouped"`
	Stats   GiftStats    `json:"stats"`
}

type GroupedGifts struct {
	Traditional []Gift `json:"traditional"`
	Receipt     []Gift `json:"receipt"`
	Bandcamp    []Gift `json:"bandcamp"`
}

type GiftStats struct {
	Total      int            `json:"total"`
	Committed  int            `json:"committed"`
	Available  int            `json:"available"`
	ByWishlist WishlistCounts `json:"byWishlist"`
}

type WishlistCounts struct {
	Traditional int `json:"traditional"`
	Receipt     int `json:"receipt"`
	Bandcamp    int `json:"bandcamp"`
}

type CommitResponse struct {
	Commitment CommitmentDetail `json:"commitment"`
	Message    string           `json:"message"`
}

// CommitmentDetail is a commitment joined with the gift it claims,
// shaped for display.
type CommitmentDetail struct {
	ID          string    `json:"id"`
	GiftID      string    `json:"giftId"`
	GiftName    string    `json:"giftName"`
	Amount      int64     `json:"amount"`
	CommittedBy string    `json:"committedBy"`
	CommittedAt time.Time `json:"committedAt"`
}

type CancelResponse struct {
	Gift Gift `json:"gift"`
}

type UserCommitment struct {
	CommitmentID string    `json:"commitmentId"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	CommittedAt  time.Time `json:"committedAt"`
	Gift         Gift      `json:"gift"`
}

type UserCommitmentsResponse struct {
	User        User                   `json:"user"`
	Commitments []UserCommitment       `json:"commitments"`
	Grouped     GroupedUserCommitments `json:"grouped"`
	Stats       CommitmentStats        `json:"stats"`
}

type GroupedUserCommitments struct {
	Traditional []UserCommitment `json:"traditional"`
	Receipt     []UserCommitment `json:"receipt"`
	Bandcamp    []UserCommitment `json:"bandcamp"`
}

type CommitmentStats struct {
	Total       int            `json:"total"`
	TotalAmount int64          `json:"totalAmount"`
	ByWishlist  WishlistCounts `json:"byWishlist"`
}

type LeaderboardResponse struct {
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
	CurrentUserRank *int               `json:"currentUserRank"`
	TotalUsers      int                `json:"totalUsers"`
}

// Error response

type ErrorResponse struct {
	Error            string       `json:"error"`
	Message          string       `json:"message,omitempty"`
	RequiresIdentity bool         `json:"requiresIdentity,omitempty"`
	AlreadyCommitted bool         `json:"alreadyCommitted,omitempty"`
	Reason           string       `json:"reason,omitempty"`
	Fields           []FieldError `json:"fields,omitempty"`
}

// FieldError describes a single validation violation. It mirrors what a
// database CHECK constraint would reject, with enough context for the
// client to fix the payload.
type FieldError struct {
	Field        string   `json:"field"`
	Message      string   `json:"message"`
	InvalidValue any      `json:"invalidValue"`
	ValidValues  []string `json:"validValues,omitempty"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatAmount renders a minor-unit amount as lei for human-readable
// messages, e.g. 123456 -> "1,234.56 lei".
func FormatAmount(bani int64) string {
	return humanize.CommafWithDigits(float64(bani)/100, 2) + " lei"
}
