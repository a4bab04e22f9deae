// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validation guards the enumerated gift fields (wishlist type,
// priority, commitment status, release type) and the positive-integer
// price constraint. It mirrors what the schema's CHECK constraints
// enforce, but runs before the transactional writes so violations come
// back as structured field errors instead of driver errors.
//
// Single-field validators return *models.FieldError (nil when valid).
// Gift validates a whole payload in batch and returns every violation.
package validation
