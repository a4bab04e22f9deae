// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"math"
	"testing"

	"github.com/maraionescu/new-home-api/models"
)

func TestEnumValidators(t *testing.T) {
	tests := []struct {
		name    string
		check   func() *models.FieldError
		wantErr bool
	}{
		{"valid wishlist type", func() *models.FieldError { return WishlistType("traditional", "f") }, false},
		{"invalid wishlist type", func() *models.FieldError { return WishlistType("vinyl", "f") }, true},
		{"empty wishlist type", func() *models.FieldError { return WishlistType("", "f") }, true},
		{"valid priority", func() *models.FieldError { return Priority("nice-to-have", "f") }, false},
		{"invalid priority", func() *models.FieldError { return Priority("urgent", "f") }, true},
		{"case sensitive", func() *models.FieldError { return Priority("Essential", "f") }, true},
		{"valid status", func() *models.FieldError { return CommitmentStatus("cancelled", "f") }, false},
		{"invalid status", func() *models.FieldError { return CommitmentStatus("pending", "f") }, true},
		{"valid release type", func() *models.FieldError { return ReleaseType("ep", "f") }, false},
		{"invalid release type", func() *models.FieldError { return ReleaseType("single", "f") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if err != nil && len(err.ValidValues) == 0 {
				t.Error("Expected validValues on enum violation")
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero is valid", 0, false},
		{"positive integer", 850, false},
		{"negative", -100, true},
		{"fractional", 123.45, true},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Price(tt.value, "estimatedPrice")
			if (err != nil) != tt.wantErr {
				t.Errorf("Price(%v): expected error=%v, got %v", tt.value, tt.wantErr, err)
			}
		})
	}
}

func TestGiftCollectsAllViolations(t *testing.T) {
	bad := "single"
	errs := Gift(GiftInput{
		WishlistType:   "bandcamp",
		Priority:       "urgent",
		EstimatedPrice: -5,
		ReleaseType:    &bad,
	}, "gifts[x].")

	if len(errs) != 3 {
		t.Fatalf("Expected 3 violations, got %d: %v", len(errs), errs)
	}
	for _, e := range errs {
		if e.Field[:9] != "gifts[x]." {
			t.Errorf("Expected prefixed field, got %q", e.Field)
		}
	}
}

func TestGiftValid(t *testing.T) {
	errs := Gift(GiftInput{
		WishlistType:   models.WishlistTraditional,
		Priority:       models.PriorityEssential,
		EstimatedPrice: 850,
	}, "")
	if len(errs) != 0 {
		t.Errorf("Expected no violations, got %v", errs)
	}
}
