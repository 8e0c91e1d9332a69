// Package storage provides the durable key-value snapshot store the
// domain store persists into. Each key holds one JSON array of entity
// objects; every save is a full overwrite of that key.
package storage

// Snapshot keys. Checkups and Reminders are the two core collections;
// Notifications is the delivery log kept by the reminder service.
const (
	CheckupsKey      = "checkups"
	RemindersKey     = "reminders"
	NotificationsKey = "notifications"
)

// Backend is the persistence adapter contract. Load reports ok=false
// when the key has never been written; corrupt or unreadable data is
// the caller's problem to degrade from.
type Backend interface {
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
	Close() error
}
