// Package query holds the pure derivations the views consume. Every
// function takes a snapshot slice and returns a fresh slice; nothing
// here mutates its input or touches storage.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"checkup-tracker/models"
	"checkup-tracker/utils"
)

// FilterAll is the category filter value that matches every checkup.
const FilterAll = "all"

// FilterByCategory returns the checkups in category. The FilterAll
// value matches everything.
func FilterByCategory(checkups []models.Checkup, category string) []models.Checkup {
	if category == FilterAll {
		return append([]models.Checkup(nil), checkups...)
	}
	var out []models.Checkup
	for _, c := range checkups {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// Search returns the checkups whose title, doctor or notes contain
// term, case-insensitively. An empty term matches everything.
func Search(checkups []models.Checkup, term string) []models.Checkup {
	term = strings.ToLower(term)
	var out []models.Checkup
	for _, c := range checkups {
		if strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(strings.ToLower(c.Doctor), term) ||
			strings.Contains(strings.ToLower(c.Notes), term) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByDateRange keeps checkups dated on or after startDate and on
// or before the end of endDate's day. Either bound may be empty. A
// checkup with an unparseable date never matches a given bound.
func FilterByDateRange(checkups []models.Checkup, startDate, endDate string) []models.Checkup {
	var start, end time.Time
	var haveStart, haveEnd bool
	if startDate != "" {
		if t, err := utils.ParseDate(startDate); err == nil {
			start = t
			haveStart = true
		}
	}
	if endDate != "" {
		if t, err := utils.ParseDate(endDate); err == nil {
			end = utils.EndOfDay(t)
			haveEnd = true
		}
	}

	var out []models.Checkup
	for _, c := range checkups {
		if !haveStart && !haveEnd {
			out = append(out, c)
			continue
		}
		t, err := utils.ParseDate(c.Date)
		if err != nil {
			continue
		}
		if haveStart && t.Before(start) {
			continue
		}
		if haveEnd && t.After(end) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Upcoming returns the checkups dated strictly after now.
func Upcoming(checkups []models.Checkup, now time.Time) []models.Checkup {
	var out []models.Checkup
	for _, c := range checkups {
		if isUpcoming(c, now) {
			out = append(out, c)
		}
	}
	return out
}

// Past returns the complement of Upcoming: checkups dated at or before
// now, plus any whose date fails to parse. Together the two cover the
// whole collection with no overlap.
func Past(checkups []models.Checkup, now time.Time) []models.Checkup {
	var out []models.Checkup
	for _, c := range checkups {
		if !isUpcoming(c, now) {
			out = append(out, c)
		}
	}
	return out
}

func isUpcoming(c models.Checkup, now time.Time) bool {
	t, err := utils.ParseDate(c.Date)
	return err == nil && t.After(now)
}

// SortByDateDesc orders checkups most recent first. Insertion order is
// the tiebreaker; unparseable dates sort last.
func SortByDateDesc(checkups []models.Checkup) []models.Checkup {
	return sortByDate(checkups, true)
}

// SortByDateAsc orders checkups soonest first, same tiebreaking as
// SortByDateDesc.
func SortByDateAsc(checkups []models.Checkup) []models.Checkup {
	return sortByDate(checkups, false)
}

func sortByDate(checkups []models.Checkup, desc bool) []models.Checkup {
	out := append([]models.Checkup(nil), checkups...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, erri := utils.ParseDate(out[i].Date)
		tj, errj := utils.ParseDate(out[j].Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
	return out
}

// CountByCategory tallies checkups per category in one pass.
// Categories without checkups do not appear.
func CountByCategory(checkups []models.Checkup) map[string]int {
	counts := make(map[string]int)
	for _, c := range checkups {
		counts[c.Category]++
	}
	return counts
}

// MonthGroup is one history bucket: all checkups falling in the same
// calendar month of the same year.
type MonthGroup struct {
	Key      string           `json:"key"`   // "<year>-<month-name>"
	Title    string           `json:"title"` // "<Month> <year>"
	Checkups []models.Checkup `json:"checkups"`
}

// GroupByMonth buckets checkups by (year, month) of their date.
// Members keep the input order, and buckets appear in the order their
// first member is encountered — callers pass a date-sorted slice, so
// bucket order follows that sort. Checkups with unparseable dates are
// skipped.
func GroupByMonth(checkups []models.Checkup) []MonthGroup {
	var groups []MonthGroup
	index := make(map[string]int)
	for _, c := range checkups {
		t, err := utils.ParseDate(c.Date)
		if err != nil {
			continue
		}
		month := t.Month().String()
		key := fmt.Sprintf("%d-%s", t.Year(), month)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{
				Key:   key,
				Title: fmt.Sprintf("%s %d", month, t.Year()),
			})
		}
		groups[i].Checkups = append(groups[i].Checkups, c)
	}
	return groups
}

// Years returns the distinct years the checkups fall in, most recent
// first.
func Years(checkups []models.Checkup) []int {
	seen := make(map[int]bool)
	var years []int
	for _, c := range checkups {
		t, err := utils.ParseDate(c.Date)
		if err != nil {
			continue
		}
		if !seen[t.Year()] {
			seen[t.Year()] = true
			years = append(years, t.Year())
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// CountInYear counts the checkups dated in year.
func CountInYear(checkups []models.Checkup, year int) int {
	count := 0
	for _, c := range checkups {
		if t, err := utils.ParseDate(c.Date); err == nil && t.Year() == year {
			count++
		}
	}
	return count
}
