package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Form field conversions shared by the TUI forms and the CLI flags. Forms hold
// everything as strings; these helpers map between form strings and the wire.

// ParseDueDate expands a date-only form value (YYYY-MM-DD) to a UTC midnight
// timestamp. Empty input means "no due date".
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", s)
	}
	t = t.UTC()
	return &t, nil
}

// DateOnly truncates a stored timestamp to the form's date-only representation.
func DateOnly(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// ParseHours parses the estimated-hours field. Empty input means unset.
func ParseHours(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hours %q", s)
	}
	if h < 0 {
		return nil, fmt.Errorf("hours must be non-negative, got %v", h)
	}
	return &h, nil
}

// OptionalRef coerces an empty-string selection to an absent reference so the
// submitted payload omits the field instead of sending "".
func OptionalRef(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// HoursString renders a stored estimated-hours value back into the form.
func HoursString(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}
