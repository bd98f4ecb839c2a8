package util

import (
	"regexp"
	"time"
)

var yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// NormalizeMonth converts a user-supplied month designator into the first
// instant of that calendar month in UTC. Accepts a bare "YYYY-MM" or any full
// date parseable by ParseDate. Returns false for anything that is not a valid
// date, including impossible calendar values like "2025-13".
func NormalizeMonth(input string) (time.Time, bool) {
	if yearMonthPattern.MatchString(input) {
		t, err := time.Parse("2006-01", input)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}

	t, ok := ParseDate(input)
	if !ok {
		return time.Time{}, false
	}
	return StartOfMonth(t.UTC()), true
}

// ParseDate parses a full date, accepting RFC 3339 timestamps and bare
// YYYY-MM-DD dates.
func ParseDate(input string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, input); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartOfMonth returns the first instant of t's calendar month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's calendar month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// MonthWindow returns the inclusive [start, end] range spanning t's calendar
// month, used to select the transactions contributing to a budget.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	return StartOfMonth(t), EndOfMonth(t)
}
