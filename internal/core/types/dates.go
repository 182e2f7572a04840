package types

import (
	"time"
)

// Calendar dates travel through the system as YYYY-MM-DD strings and
// timestamps as ISO-8601 strings. Lexical order equals chronological
// order for both, so the engines compare them as strings and never
// parse. The only exception is day arithmetic (aging, expiry windows),
// which goes through the helpers below.

const dateLayout = "2006-01-02"

// TodayISO returns the current UTC date as YYYY-MM-DD.
func TodayISO() string {
	return time.Now().UTC().Format(dateLayout)
}

// NowISO returns the current UTC timestamp in RFC 3339.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DateAddDays returns the UTC date days from today as YYYY-MM-DD.
func DateAddDays(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(dateLayout)
}

// DaysPastDue returns whole calendar days between dueDate and today:
// positive when overdue, zero or negative when not yet due. Empty or
// malformed dueDate counts as not due.
func DaysPastDue(today, dueDate string) int {
	if dueDate == "" {
		return 0
	}
	t, err := time.Parse(dateLayout, today)
	if err != nil {
		return 0
	}
	d, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return 0
	}
	return int(t.Sub(d).Hours() / 24)
}

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date.
func IsValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
