package query

import (
	"time"

	"checkup-tracker/models"
)

// upcomingLimit caps the dashboard's upcoming-checkups list.
const upcomingLimit = 5

// Overview is the dashboard summary derived from the full collections.
type Overview struct {
	TotalCheckups      int              `json:"totalCheckups"`
	TotalReminders     int              `json:"totalReminders"`
	TotalCategories    int              `json:"totalCategories"`
	CheckupsByCategory map[string]int   `json:"checkupsByCategory"`
	UpcomingCheckups   []models.Checkup `json:"upcomingCheckups"`
}

// DashboardOverview builds the dashboard summary: collection totals,
// the per-category tally, and the five soonest upcoming checkups.
func DashboardOverview(checkups []models.Checkup, reminders []models.Reminder, now time.Time) Overview {
	byCategory := CountByCategory(checkups)
	upcoming := SortByDateAsc(Upcoming(checkups, now))
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	return Overview{
		TotalCheckups:      len(checkups),
		TotalReminders:     len(reminders),
		TotalCategories:    len(byCategory),
		CheckupsByCategory: byCategory,
		UpcomingCheckups:   upcoming,
	}
}
