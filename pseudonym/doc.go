// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pseudonym generates anonymous display names for users in
// Adjective-Animal-NNN form (e.g. "Skeptical-Platypus-742"). Names are
// unique per registry; GenerateUnique retries against the known set and
// falls back to a timestamp-derived suffix when the space gets crowded.
package pseudonym
