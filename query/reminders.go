package query

import (
	"sort"
	"time"

	"checkup-tracker/models"
	"checkup-tracker/utils"
)

// FiringReminders returns the reminders that are active and due at or
// before now, soonest-due first. Unparseable due dates never fire.
func FiringReminders(reminders []models.Reminder, now time.Time) []models.Reminder {
	var out []models.Reminder
	for _, r := range reminders {
		if !r.IsActive {
			continue
		}
		t, err := utils.ParseDate(r.ReminderDate)
		if err != nil {
			continue
		}
		if !t.After(now) {
			out = append(out, r)
		}
	}
	return SortRemindersByDate(out)
}

// SortRemindersByDate orders reminders by due date ascending, keeping
// insertion order for ties; unparseable due dates sort last.
func SortRemindersByDate(reminders []models.Reminder) []models.Reminder {
	out := append([]models.Reminder(nil), reminders...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, erri := utils.ParseDate(out[i].ReminderDate)
		tj, errj := utils.ParseDate(out[j].ReminderDate)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.Before(tj)
	})
	return out
}

// RemindersForCheckup returns the reminders referencing checkupID.
func RemindersForCheckup(reminders []models.Reminder, checkupID string) []models.Reminder {
	var out []models.Reminder
	for _, r := range reminders {
		if r.CheckupID == checkupID {
			out = append(out, r)
		}
	}
	return out
}
