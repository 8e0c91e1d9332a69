package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkup-tracker/models"
)

func reminder(id, checkupID, date string, active bool) models.Reminder {
	return models.Reminder{ID: id, CheckupID: checkupID, Title: id, ReminderDate: date, IsActive: active}
}

func TestFiringReminders(t *testing.T) {
	reminders := []models.Reminder{
		reminder("due-late", "c1", "2024-06-15T11:00:00.000Z", true),
		reminder("due-early", "c1", "2024-06-01T09:00:00.000Z", true),
		reminder("dismissed", "c1", "2024-06-01T09:00:00.000Z", false),
		reminder("future", "c2", "2024-07-01T09:00:00.000Z", true),
		reminder("broken", "c2", "garbage", true),
	}

	firing := FiringReminders(reminders, testNow)

	require.Len(t, firing, 2)
	assert.Equal(t, "due-early", firing[0].ID)
	assert.Equal(t, "due-late", firing[1].ID)
}

func TestFiringRemindersDueExactlyNow(t *testing.T) {
	reminders := []models.Reminder{
		reminder("right-now", "c1", "2024-06-15T12:00:00.000Z", true),
	}
	assert.Len(t, FiringReminders(reminders, testNow), 1)
}

func TestSortRemindersByDate(t *testing.T) {
	reminders := []models.Reminder{
		reminder("c", "x", "2024-06-20T09:00:00.000Z", true),
		reminder("a", "x", "2024-06-01T09:00:00.000Z", true),
		reminder("broken", "x", "nope", true),
		reminder("b", "x", "2024-06-10T09:00:00.000Z", true),
	}

	sorted := SortRemindersByDate(reminders)
	got := make([]string, 0, len(sorted))
	for _, r := range sorted {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "broken"}, got)
}

func TestRemindersForCheckup(t *testing.T) {
	reminders := []models.Reminder{
		reminder("r1", "c1", "2024-06-01T09:00:00.000Z", true),
		reminder("r2", "c2", "2024-06-02T09:00:00.000Z", true),
		reminder("r3", "c1", "2024-06-03T09:00:00.000Z", false),
	}

	got := RemindersForCheckup(reminders, "c1")
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r3", got[1].ID)

	assert.Empty(t, RemindersForCheckup(reminders, "missing"))
}
