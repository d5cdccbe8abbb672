package domain

import (
	"strings"
	"time"
)

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates. An empty string
// yields nil.
func ParseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, Validationf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", field)
}

// ParseMonth parses YYYY-MM into the half-open UTC range [start, end).
func ParseMonth(s string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, time.Time{}, Validationf("month must be in YYYY-MM format")
	}
	return start, start.AddDate(0, 1, 0), nil
}
