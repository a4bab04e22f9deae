// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/maraionescu/new-home-api/models"
	"github.com/maraionescu/new-home-api/validation"
)

// GiftData is one gift as it appears in a snapshot file. Prices are in
// bani, same as the database; JSON numbers arrive as float64 and are
// validated to be non-negative integers before any write.
type GiftData struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Category       string  `json:"category"`
	Priority       string  `json:"priority"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	ReceiptID           *string `json:"receiptId,omitempty"`
	AlreadyPurchased    *bool   `json:"alreadyPurchased,omitempty"`
	ReimbursementMethod *string `json:"reimbursementMethod,omitempty"`

	BandcampURL     *string `json:"bandcampUrl,omitempty"`
	Artist          *string `json:"artist,omitempty"`
	AlbumTitle      *string `json:"albumTitle,omitempty"`
	ReleaseType     *string `json:"releaseType,omitempty"`
	DigitalDelivery *bool   `json:"digitalDelivery,omitempty"`
}

// Snapshot is the authoritative catalog: three wishlists plus optional
// leaderboard tier thresholds.
type Snapshot struct {
	TraditionalWishlist []GiftData       `json:"traditionalWishlist"`
	ReceiptWishlist     []GiftData       `json:"receiptWishlist"`
	BandcampWishlist    []GiftData       `json:"bandcampWishlist"`
	TierThresholds      map[string]int64 `json:"tierThresholds,omitempty"`
}

// Load reads and parses a snapshot file. It does not validate; call
// Validate before writing anything to the database.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// Validate checks every gift in the snapshot against the enum and price
// domains and collects all violations. A snapshot with any violation
// must not touch the database.
func (s *Snapshot) Validate() []models.FieldError {
	var violations []models.FieldError
	seen := make(map[string]bool)

	check := func(list []GiftData, wishlistType string) {
		for _, g := range list {
			prefix := fmt.Sprintf("gifts[%s].", g.ID)
			if g.ID == "" {
				violations = append(violations, models.FieldError{
					Field:        prefix + "id",
					Message:      "gift id must not be empty",
					InvalidValue: g.ID,
				})
			} else if seen[g.ID] {
				violations = append(violations, models.FieldError{
					Field:        prefix + "id",
					Message:      "duplicate gift id",
					InvalidValue: g.ID,
				})
			}
			seen[g.ID] = true

			violations = append(violations, validation.Gift(validation.GiftInput{
				WishlistType:   wishlistType,
				Priority:       g.Priority,
				EstimatedPrice: g.EstimatedPrice,
				ReleaseType:    g.ReleaseType,
			}, prefix)...)
		}
	}

	check(s.TraditionalWishlist, models.WishlistTraditional)
	check(s.ReceiptWishlist, models.WishlistReceipt)
	check(s.BandcampWishlist, models.WishlistBandcamp)
	return violations
}

// Gifts flattens the three wishlists into database rows. Type-specific
// fields are zeroed outside their wishlist so a gift moved between
// lists cannot drag stale attributes along.
func (s *Snapshot) Gifts() []models.Gift {
	gifts := make([]models.Gift, 0, len(s.TraditionalWishlist)+len(s.ReceiptWishlist)+len(s.BandcampWishlist))

	for _, g := range s.TraditionalWishlist {
		gifts = append(gifts, g.toGift(models.WishlistTraditional))
	}
	for _, g := range s.ReceiptWishlist {
		row := g.toGift(models.WishlistReceipt)
		if row.AlreadyPurchased == nil {
			f := false
			row.AlreadyPurchased = &f
		}
		gifts = append(gifts, row)
	}
	for _, g := range s.BandcampWishlist {
		row := g.toGift(models.WishlistBandcamp)
		if row.DigitalDelivery == nil {
			f := false
			row.DigitalDelivery = &f
		}
		gifts = append(gifts, row)
	}
	return gifts
}

func (g GiftData) toGift(wishlistType string) models.Gift {
	row := models.Gift{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		EstimatedPrice: int64(g.EstimatedPrice),
		Category:       g.Category,
		Priority:       g.Priority,
		WishlistType:   wishlistType,
		ImageURL:       g.ImageURL,
		Notes:          g.Notes,
	}
	switch wishlistType {
	case models.WishlistReceipt:
		row.ReceiptID = g.ReceiptID
		row.AlreadyPurchased = g.AlreadyPurchased
		row.ReimbursementMethod = g.ReimbursementMethod
	case models.WishlistBandcamp:
		row.BandcampURL = g.BandcampURL
		row.Artist = g.Artist
		row.AlbumTitle = g.AlbumTitle
		row.ReleaseType = g.ReleaseType
		row.DigitalDelivery = g.DigitalDelivery
	}
	return row
}
