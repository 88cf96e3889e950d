// Package dateutil provides date-only helpers for parsing, formatting, and
// comparing calendar dates. The zero time.Time plays the role of a missing
// date: parse failures return it and formatting it yields an empty string,
// so callers treat the zero value as a validation failure rather than an error.
package dateutil

import (
	"strings"
	"time"
)

// Fixed layouts used across the application for dates and timestamps.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseDate parses a strict yyyy-MM-dd date string in the local time zone.
// Empty, blank, or malformed input yields the zero time.Time.
func ParseDate(s string) time.Time {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}
	}

	t, err := time.ParseInLocation(DateLayout, trimmed, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatDate formats a date as yyyy-MM-dd.
// The zero time.Time formats to an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateTime formats a timestamp as yyyy-MM-dd HH:mm:ss.
// The zero time.Time formats to an empty string.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// StripTime normalizes a timestamp to midnight in the local time zone.
// The zero time.Time passes through unchanged.
func StripTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// AddDays returns the date n calendar days after t. time.Date normalizes
// out-of-range days, so month and year rollover and leap years are handled.
// The zero time.Time passes through unchanged.
func AddDays(t time.Time, days int) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.AddDate(0, 0, days)
}

// IsToday reports whether t falls on the current day in the local time zone.
func IsToday(t time.Time) bool {
	if t.IsZero() {
		return false
	}

	now := time.Now().In(time.Local)
	local := t.In(time.Local)
	return now.Year() == local.Year() && now.YearDay() == local.YearDay()
}

// Today returns the current date with the time component stripped.
func Today() time.Time {
	return StripTime(time.Now())
}
