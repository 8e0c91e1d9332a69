// models/notification_log.go
package models

// Notification delivery outcomes.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// NotificationLog records one attempt to deliver a firing reminder.
type NotificationLog struct {
	ID           string `json:"id"`
	ReminderID   string `json:"reminderId"`
	CheckupID    string `json:"checkupId"`
	Message      string `json:"message"`
	Status       string `json:"status"` // sent, failed
	ErrorMessage string `json:"errorMessage"`
	Channel      string `json:"channel"` // whatsapp, sms
	SentAt       string `json:"sentAt"`
}
