package errors

import (
	"strings"
	"unicode"
)

// Entry list limits. The column maximum is deliberately low: the ladder is a
// visual artifact and stops being readable long before the algorithm stops
// being fast.
const (
	// MinEntries is the smallest usable lottery size. A single entry has
	// nothing to permute.
	MinEntries = 2

	// MaxEntries is the largest supported lottery size.
	MaxEntries = 100

	// MaxEntryLength is the maximum length of a single display name.
	MaxEntryLength = 64
)

// ValidateEntry validates a single display name (participant or result).
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 64 characters
func ValidateEntry(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "entry name cannot be empty")
	}

	if len(name) > MaxEntryLength {
		return New(ErrCodeInvalidInput, "entry name too long (max %d characters)", MaxEntryLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entry name contains control characters: %q", name)
		}
	}

	return nil
}

// ValidateEntries validates the two input lists of a lottery: participants
// and results must have the same length within [MinEntries, MaxEntries],
// every name must pass [ValidateEntry], and participant names must be
// pairwise distinct so the final association is unambiguous.
//
// Duplicate result names are allowed: two prizes may well read "ticket".
func ValidateEntries(participants, results []string) error {
	if len(participants) < MinEntries {
		return New(ErrCodeInvalidInput, "need at least %d participants, got %d", MinEntries, len(participants))
	}
	if len(participants) > MaxEntries {
		return New(ErrCodeInvalidInput, "too many participants: %d (max %d)", len(participants), MaxEntries)
	}
	if len(results) != len(participants) {
		return New(ErrCodeInvalidInput, "participant/result count mismatch: %d vs %d", len(participants), len(results))
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if err := ValidateEntry(p); err != nil {
			return err
		}
		if seen[p] {
			return New(ErrCodeInvalidInput, "duplicate participant: %q", p)
		}
		seen[p] = true
	}

	for _, r := range results {
		if err := ValidateEntry(r); err != nil {
			return err
		}
	}

	return nil
}
