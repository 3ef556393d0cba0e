// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package intake

import (
	"fmt"
	"time"
)

// TimestampLayout is MMDDYYHHMMSS, e.g. "031524143000" for 2024-03-15 14:30:00.
const TimestampLayout = "010206150405"

// ParseTimestamp parses a 12-digit submission timestamp.
// No zone is encoded; the result is in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) != len(TimestampLayout) {
		return time.Time{}, fmt.Errorf("timestamp %q: expected %d digits", s, len(TimestampLayout))
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, fmt.Errorf("timestamp %q: non-digit at position %d", s, i)
		}
	}

	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatTimestamp renders t as MMDDYYHHMMSS.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
