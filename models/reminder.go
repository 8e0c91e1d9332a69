package models

// Reminder is a user-defined alert tied to a checkup. CheckupID is a
// weak reference: deleting the checkup cascades to its reminders, so a
// stored reminder never outlives its checkup. ReminderDate and
// CreatedAt hold RFC 3339 UTC timestamps.
//
// A reminder is "firing" when it is active and its due time has
// passed. That state is always computed against the current clock,
// never stored.
type Reminder struct {
	ID           string `json:"id"`
	CheckupID    string `json:"checkupId"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	ReminderDate string `json:"reminderDate"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    string `json:"createdAt"`
}
