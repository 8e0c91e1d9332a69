// utils/dates.go
package utils

import (
	"fmt"
	"math"
	"time"
)

// InvalidDate is the sentinel the formatting helpers return for input
// that cannot be parsed. Display code renders it as-is.
const InvalidDate = "Invalid date"

// canonicalLayout is the stored timestamp format: RFC 3339 UTC with
// millisecond precision, matching what earlier snapshots contain.
const canonicalLayout = "2006-01-02T15:04:05.000Z"

// dateLayouts are the timestamp shapes accepted on input: canonical
// stored values, datetime-local form values, and bare dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses value against the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// CanonicalDate renders t in the canonical stored format.
func CanonicalDate(t time.Time) string {
	return t.UTC().Format(canonicalLayout)
}

// FormatDate renders a timestamp as a long-form date, e.g.
// "January 02, 2006". Returns InvalidDate when value cannot be parsed.
func FormatDate(value string) string {
	t, err := ParseDate(value)
	if err != nil {
		return InvalidDate
	}
	return t.Format("January 02, 2006")
}

// FormatDateTime is FormatDate plus a 12-hour clock with am/pm marker.
func FormatDateTime(value string) string {
	t, err := ParseDate(value)
	if err != nil {
		return InvalidDate
	}
	return t.Format("January 02, 2006 3:04 PM")
}

// IsPastDate reports whether value is strictly before now. Returns
// false for unparseable input.
func IsPastDate(value string) bool {
	t, err := ParseDate(value)
	if err != nil {
		return false
	}
	return t.Before(time.Now())
}

// IsFutureDate reports whether value is strictly after now. Returns
// false for unparseable input.
func IsFutureDate(value string) bool {
	t, err := ParseDate(value)
	if err != nil {
		return false
	}
	return t.After(time.Now())
}

// DaysUntil returns the day-count distance between value and now,
// rounded up. The distance is a magnitude: past dates report how many
// days ago they were, not a negative delta. Returns 0 for unparseable
// input.
func DaysUntil(value string) int {
	t, err := ParseDate(value)
	if err != nil {
		return 0
	}
	diff := math.Abs(time.Until(t).Hours())
	return int(math.Ceil(diff / 24))
}

// GetDateInDays returns the canonical timestamp for n days from now.
func GetDateInDays(n int) string {
	return CanonicalDate(time.Now().AddDate(0, 0, n))
}

// BeginningOfDay returns t with the clock zeroed out.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's day.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999000000, t.Location())
}

// DaysBetween counts whole calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}
