// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pseudonym

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

var adjectives = []string{
	"Skeptical", "Enthusiastic", "Mysterious", "Chaotic", "Serene",
	"Impulsive", "Methodical", "Whimsical", "Pragmatic", "Ambitious",
	"Curious", "Bold", "Cautious", "Fierce", "Gentle",
	"Swift", "Clever", "Brave", "Wise", "Jolly",
	"Sarcastic", "Optimistic", "Cynical", "Dramatic", "Stoic",
}

var animals = []string{
	"Platypus", "Narwhal", "Axolotl", "Pangolin", "Capybara",
	"Quokka", "Otter", "Meerkat", "Lemur", "Sloth",
	"Panda", "Eagle", "Dolphin", "Tiger", "Owl",
	"Fox", "Bear", "Wolf", "Hawk", "Lynx",
	"Falcon", "Raven", "Badger", "Moose", "Raccoon",
}

var formatPattern = regexp.MustCompile(`^[A-Z][a-z]+-[A-Z][a-z]+-\d{3}$`)

// Generate returns a random pseudonym in Adjective-Animal-NNN form,
// e.g. "Skeptical-Platypus-742".
func Generate() string {
	adjective := adjectives[rand.IntN(len(adjectives))]
	animal := animals[rand.IntN(len(animals))]
	return fmt.Sprintf("%s-%s-%03d", adjective, animal, rand.IntN(1000))
}

// GenerateUnique returns a pseudonym not present in existing. It retries
// up to maxAttempts times, then falls back to a timestamp-derived suffix
// so it always returns something.
func GenerateUnique(existing map[string]bool, maxAttempts int) string {
	for i := 0; i < maxAttempts; i++ {
		p := Generate()
		if !existing[p] {
			return p
		}
	}

	adjective := adjectives[rand.IntN(len(adjectives))]
	animal := animals[rand.IntN(len(animals))]
	return fmt.Sprintf("%s-%s-%03d", adjective, animal, time.Now().UnixMilli()%1000)
}

// IsValidFormat reports whether s matches the Adjective-Animal-NNN shape.
func IsValidFormat(s string) bool {
	return formatPattern.MatchString(s)
}
