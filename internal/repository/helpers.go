package repository

import (
	"fmt"
	"time"
)

// formatTimestamp renders a row timestamp for SQLite storage.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp parses a stored row timestamp, naming the column on error.
func parseTimestamp(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// nowUTC returns the current UTC time truncated to storage precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
