// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/maraionescu/new-home-api/models"
)

// Enumerated domains. These mirror the CHECK constraints in the schema;
// validation runs before any write so a bad payload never reaches the
// transaction.
var (
	WishlistTypes      = []string{models.WishlistTraditional, models.WishlistReceipt, models.WishlistBandcamp}
	Priorities         = []string{models.PriorityEssential, models.PriorityNiceToHave, models.PriorityLuxury, models.PriorityDigital}
	CommitmentStatuses = []string{models.CommitmentActive, models.CommitmentCancelled}
	ReleaseTypes       = []string{models.ReleaseAlbum, models.ReleaseTrack, models.ReleaseEP}
)

func contains(domain []string, value string) bool {
	for _, v := range domain {
		if v == value {
			return true
		}
	}
	return false
}

func domainError(field string, value any, domain []string) *models.FieldError {
	return &models.FieldError{
		Field:        field,
		Message:      fmt.Sprintf("invalid value %q: must be one of: %s", value, strings.Join(domain, ", ")),
		InvalidValue: value,
		ValidValues:  domain,
	}
}

// WishlistType checks value against the wishlist type domain.
// Returns nil when valid.
func WishlistType(value, field string) *models.FieldError {
	if !contains(WishlistTypes, value) {
		return domainError(field, value, WishlistTypes)
	}
	return nil
}

// Priority checks value against the priority domain.
func Priority(value, field string) *models.FieldError {
	if !contains(Priorities, value) {
		return domainError(field, value, Priorities)
	}
	return nil
}

// CommitmentStatus checks value against the commitment status domain.
func CommitmentStatus(value, field string) *models.FieldError {
	if !contains(CommitmentStatuses, value) {
		return domainError(field, value, CommitmentStatuses)
	}
	return nil
}

// ReleaseType checks value against the bandcamp release type domain.
func ReleaseType(value, field string) *models.FieldError {
	if !contains(ReleaseTypes, value) {
		return domainError(field, value, ReleaseTypes)
	}
	return nil
}

// Price checks that value is a non-negative integer of bani. Fractional
// and non-finite values are rejected; zero is allowed for free items
// like digital downloads.
func Price(value float64, field string) *models.FieldError {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value != math.Trunc(value) {
		return &models.FieldError{
			Field:        field,
			Message:      fmt.Sprintf("invalid price %v: must be a non-negative integer in bani", value),
			InvalidValue: value,
		}
	}
	return nil
}

// GiftInput carries the constrained fields of a gift payload.
type GiftInput struct {
	WishlistType   string
	Priority       string
	EstimatedPrice float64
	ReleaseType    *string // only meaningful for bandcamp gifts
}

// Gift validates a gift payload in batch, collecting every violation
// instead of stopping at the first. The field parameter prefixes each
// violation so callers validating many gifts can attribute them.
func Gift(in GiftInput, prefix string) []models.FieldError {
	var errs []models.FieldError

	if e := WishlistType(in.WishlistType, prefix+"wishlistType"); e != nil {
		errs = append(errs, *e)
	}
	if e := Priority(in.Priority, prefix+"priority"); e != nil {
		errs = append(errs, *e)
	}
	if e := Price(in.EstimatedPrice, prefix+"estimatedPrice"); e != nil {
		errs = append(errs, *e)
	}
	if in.WishlistType == models.WishlistBandcamp && in.ReleaseType != nil && *in.ReleaseType != "" {
		if e := ReleaseType(*in.ReleaseType, prefix+"releaseType"); e != nil {
			errs = append(errs, *e)
		}
	}

	return errs
}
