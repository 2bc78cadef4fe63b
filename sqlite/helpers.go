package sqlite

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// parseRFC3339 parses a timestamp column, naming the field on failure.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// formatTime formats t as a UTC RFC3339 string. Fixed-width output keeps
// lexical order equal to chronological order in queries.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// hashURL returns the xxhash64 of url as a 16-digit hex string.
func hashURL(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}
