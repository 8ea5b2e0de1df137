// Package validate holds small request-level validators shared by the
// HTTP handlers. Domain rules live in the services; this only guards the
// wire shapes.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// UserID must be lowercase letters, digits, underscore or hyphen, 1-40 chars.
var userIDRx = regexp.MustCompile(`^[a-z0-9_-]{1,40}$`)

// UserID validates a path user identifier.
func UserID(v string) error {
	if !userIDRx.MatchString(v) {
		return fmt.Errorf("invalid userId")
	}
	return nil
}

// Date validates a YYYY-MM-DD calendar-day key.
func Date(v string) error {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

// Days parses an optional ?days= query value. Empty input yields def;
// values must be positive integers.
func Days(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("days must be a positive integer")
	}
	return n, nil
}

// Timestamp parses an optional RFC3339 query value; empty input yields the
// zero time (unbounded).
func Timestamp(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamps must be RFC3339")
	}
	return t, nil
}

// GoalIndex parses a path goal index.
func GoalIndex(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("goal index must be a non-negative integer")
	}
	return n, nil
}
