// Package store is the single source of truth for checkup and
// reminder collections. Every mutation goes through it, persists a
// full snapshot of the affected collection, and then notifies
// subscribers.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"checkup-tracker/models"
	"checkup-tracker/query"
	"checkup-tracker/storage"
	"checkup-tracker/utils"
)

// Store holds the in-memory authoritative state. Collections keep
// insertion order; that order is also the on-disk order and the
// stable tiebreaker for sorted views.
type Store struct {
	backend storage.Backend
	log     *zap.Logger

	mu          sync.Mutex
	checkups    []models.Checkup
	reminders   []models.Reminder
	subscribers []func()
}

// New builds a store backed by backend. Both collections are loaded
// immediately; a missing or corrupt snapshot starts the collection
// empty rather than failing.
func New(backend storage.Backend, log *zap.Logger) *Store {
	s := &Store{backend: backend, log: log}
	s.checkups = loadCollection[models.Checkup](backend, storage.CheckupsKey, log)
	s.reminders = loadCollection[models.Reminder](backend, storage.RemindersKey, log)
	return s
}

func loadCollection[T any](backend storage.Backend, key string, log *zap.Logger) []T {
	data, ok, err := backend.Load(key)
	if err != nil {
		log.Warn("failed to load snapshot, starting empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("corrupt snapshot, starting empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	return items
}

// Subscribe registers fn to run after every completed mutation. The
// callback fires outside the store's lock, on the mutating goroutine.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := append(make([]func(), 0, len(s.subscribers)), s.subscribers...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// persist marshals items and overwrites the key's snapshot. Failures
// are logged, not returned: the in-memory state is already updated and
// the next successful save writes the full picture anyway.
func persist[T any](s *Store, key string, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Error("failed to marshal snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.backend.Save(key, data); err != nil {
		s.log.Error("failed to persist snapshot", zap.String("key", key), zap.Error(err))
	}
}

// CheckupInput carries the caller-supplied fields for a new checkup.
// Validating presence of title/category/date is the caller's job.
type CheckupInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Doctor   string `json:"doctor"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
	Date     string `json:"date"`
}

// CheckupPatch holds the fields a partial update may change. Nil
// fields are left untouched; id and createdAt can never change.
type CheckupPatch struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Doctor   *string `json:"doctor"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
	Date     *string `json:"date"`
}

// AddCheckup creates a checkup with a fresh id and creation timestamp,
// canonicalizes its date, appends it and persists. The date must
// parse; anything unparseable is rejected before it can be stored.
func (s *Store) AddCheckup(input CheckupInput) (models.Checkup, error) {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return models.Checkup{}, fmt.Errorf("invalid checkup date: %w", err)
	}

	// Required-field validation belongs to the caller; an off-list
	// category is still worth flagging since filters will never show it.
	if !models.IsValidCategory(input.Category) {
		s.log.Warn("unknown checkup category", zap.String("category", input.Category))
	}

	checkup := models.Checkup{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Category:  input.Category,
		Doctor:    input.Doctor,
		Location:  input.Location,
		Notes:     input.Notes,
		Date:      utils.CanonicalDate(date),
		CreatedAt: utils.CanonicalDate(time.Now()),
	}

	s.mu.Lock()
	s.checkups = append(s.checkups, checkup)
	persist(s, storage.CheckupsKey, s.checkups)
	s.mu.Unlock()

	s.notify()
	return checkup, nil
}

// UpdateCheckup merges patch into the checkup with the given id and
// persists. An unknown id is a no-op. A patched date is canonicalized;
// an unparseable one rejects the whole patch.
func (s *Store) UpdateCheckup(id string, patch CheckupPatch) error {
	var date string
	if patch.Date != nil {
		t, err := utils.ParseDate(*patch.Date)
		if err != nil {
			return fmt.Errorf("invalid checkup date: %w", err)
		}
		date = utils.CanonicalDate(t)
	}
	if patch.Category != nil && !models.IsValidCategory(*patch.Category) {
		s.log.Warn("unknown checkup category", zap.String("category", *patch.Category))
	}

	s.mu.Lock()
	changed := false
	for i := range s.checkups {
		if s.checkups[i].ID != id {
			continue
		}
		c := &s.checkups[i]
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Category != nil {
			c.Category = *patch.Category
		}
		if patch.Doctor != nil {
			c.Doctor = *patch.Doctor
		}
		if patch.Location != nil {
			c.Location = *patch.Location
		}
		if patch.Notes != nil {
			c.Notes = *patch.Notes
		}
		if patch.Date != nil {
			c.Date = date
		}
		changed = true
		break
	}
	if changed {
		persist(s, storage.CheckupsKey, s.checkups)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// DeleteCheckup removes the checkup and cascades to every reminder
// referencing it, persisting both collections.
func (s *Store) DeleteCheckup(id string) {
	s.mu.Lock()
	checkups := s.checkups[:0:0]
	removed := false
	for _, c := range s.checkups {
		if c.ID == id {
			removed = true
			continue
		}
		checkups = append(checkups, c)
	}
	if removed {
		s.checkups = checkups
		reminders := s.reminders[:0:0]
		for _, r := range s.reminders {
			if r.CheckupID != id {
				reminders = append(reminders, r)
			}
		}
		s.reminders = reminders
		persist(s, storage.CheckupsKey, s.checkups)
		persist(s, storage.RemindersKey, s.reminders)
	}
	s.mu.Unlock()

	if removed {
		s.notify()
	}
}

// ReminderInput carries the caller-supplied fields for a new reminder.
type ReminderInput struct {
	CheckupID    string `json:"checkupId"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	ReminderDate string `json:"reminderDate"`
	IsActive     bool   `json:"isActive"`
}

// ReminderPatch holds the fields a reminder partial update may change.
type ReminderPatch struct {
	CheckupID    *string `json:"checkupId"`
	Title        *string `json:"title"`
	Message      *string `json:"message"`
	ReminderDate *string `json:"reminderDate"`
	IsActive     *bool   `json:"isActive"`
}

// AddReminder creates a reminder with a fresh id and creation
// timestamp, canonicalizes its due date, appends it and persists.
func (s *Store) AddReminder(input ReminderInput) (models.Reminder, error) {
	date, err := utils.ParseDate(input.ReminderDate)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("invalid reminder date: %w", err)
	}

	reminder := models.Reminder{
		ID:           uuid.NewString(),
		CheckupID:    input.CheckupID,
		Title:        input.Title,
		Message:      input.Message,
		ReminderDate: utils.CanonicalDate(date),
		IsActive:     input.IsActive,
		CreatedAt:    utils.CanonicalDate(time.Now()),
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, reminder)
	persist(s, storage.RemindersKey, s.reminders)
	s.mu.Unlock()

	s.notify()
	return reminder, nil
}

// UpdateReminder merges patch into the reminder with the given id and
// persists. An unknown id is a no-op.
func (s *Store) UpdateReminder(id string, patch ReminderPatch) error {
	var date string
	if patch.ReminderDate != nil {
		t, err := utils.ParseDate(*patch.ReminderDate)
		if err != nil {
			return fmt.Errorf("invalid reminder date: %w", err)
		}
		date = utils.CanonicalDate(t)
	}

	s.mu.Lock()
	changed := false
	for i := range s.reminders {
		if s.reminders[i].ID != id {
			continue
		}
		r := &s.reminders[i]
		if patch.CheckupID != nil {
			r.CheckupID = *patch.CheckupID
		}
		if patch.Title != nil {
			r.Title = *patch.Title
		}
		if patch.Message != nil {
			r.Message = *patch.Message
		}
		if patch.ReminderDate != nil {
			r.ReminderDate = date
		}
		if patch.IsActive != nil {
			r.IsActive = *patch.IsActive
		}
		changed = true
		break
	}
	if changed {
		persist(s, storage.RemindersKey, s.reminders)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// DeleteReminder removes the reminder with the given id and persists.
// Unlike checkup deletion there is nothing to cascade to.
func (s *Store) DeleteReminder(id string) {
	s.mu.Lock()
	reminders := s.reminders[:0:0]
	removed := false
	for _, r := range s.reminders {
		if r.ID == id {
			removed = true
			continue
		}
		reminders = append(reminders, r)
	}
	if removed {
		s.reminders = reminders
		persist(s, storage.RemindersKey, s.reminders)
	}
	s.mu.Unlock()

	if removed {
		s.notify()
	}
}

// Checkups returns a copy of the checkup collection in insertion order.
func (s *Store) Checkups() []models.Checkup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Checkup(nil), s.checkups...)
}

// Reminders returns a copy of the reminder collection in insertion order.
func (s *Store) Reminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Reminder(nil), s.reminders...)
}

// CheckupByID returns the checkup with the given id, if present.
func (s *Store) CheckupByID(id string) (models.Checkup, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.checkups {
		if c.ID == id {
			return c, true
		}
	}
	return models.Checkup{}, false
}

// CheckupsByCategory returns the checkups in category.
func (s *Store) CheckupsByCategory(category string) []models.Checkup {
	return query.FilterByCategory(s.Checkups(), category)
}

// UpcomingCheckups returns the checkups dated after the current time.
func (s *Store) UpcomingCheckups() []models.Checkup {
	return query.Upcoming(s.Checkups(), time.Now())
}

// PastCheckups returns the checkups dated at or before the current time.
func (s *Store) PastCheckups() []models.Checkup {
	return query.Past(s.Checkups(), time.Now())
}

// RemindersByCheckupID returns the reminders tied to a checkup.
func (s *Store) RemindersByCheckupID(checkupID string) []models.Reminder {
	return query.RemindersForCheckup(s.Reminders(), checkupID)
}

// FiringReminders returns the reminders that are active and due right
// now. Recomputed from scratch on every call so it always reflects the
// current clock.
func (s *Store) FiringReminders() []models.Reminder {
	return query.FiringReminders(s.Reminders(), time.Now())
}
