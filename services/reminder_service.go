// services/reminder_service.go
package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"checkup-tracker/models"
	"checkup-tracker/storage"
	"checkup-tracker/store"
	"checkup-tracker/utils"
)

// Notifier delivers one reminder message and returns the provider's
// message id.
type Notifier interface {
	Send(to, body string) (string, error)
}

// TwilioNotifier sends reminder messages through Twilio, as WhatsApp
// when the destination is addressed that way, SMS otherwise.
type TwilioNotifier struct {
	client       *twilio.RestClient
	from         string
	whatsappFrom string
}

// NewTwilioNotifier builds a notifier from the TWILIO_* environment
// variables.
func NewTwilioNotifier() *TwilioNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from:         os.Getenv("TWILIO_PHONE_NUMBER"),
		whatsappFrom: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
}

func (n *TwilioNotifier) Send(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)

	if strings.HasPrefix(to, "whatsapp:") {
		params.SetFrom("whatsapp:" + n.whatsappFrom)
	} else {
		params.SetFrom(n.from)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// ReminderService watches the store for firing reminders and delivers
// each one once, recording every attempt in a persisted notification
// log. Failed deliveries are retried on the next sweep.
type ReminderService struct {
	store    *store.Store
	backend  storage.Backend
	notifier Notifier
	log      *zap.Logger
	phone    string

	mu   sync.Mutex
	sent map[string]bool // reminder ids already delivered
	logs []models.NotificationLog
	cron *cron.Cron
}

// NewReminderService loads the notification log from backend and seeds
// the delivered set from it, so restarts do not re-send old reminders.
func NewReminderService(st *store.Store, backend storage.Backend, notifier Notifier, phone string, log *zap.Logger) *ReminderService {
	s := &ReminderService{
		store:    st,
		backend:  backend,
		notifier: notifier,
		log:      log,
		phone:    phone,
		sent:     make(map[string]bool),
	}

	data, ok, err := backend.Load(storage.NotificationsKey)
	if err != nil {
		log.Warn("failed to load notification log", zap.Error(err))
	} else if ok {
		if err := json.Unmarshal(data, &s.logs); err != nil {
			log.Warn("corrupt notification log, starting empty", zap.Error(err))
			s.logs = nil
		}
	}
	for _, entry := range s.logs {
		if entry.Status == models.NotificationSent {
			s.sent[entry.ReminderID] = true
		}
	}

	return s
}

// StartScheduler runs a sweep now, re-runs one whenever the store
// changes, and schedules recurring sweeps with spec (cron syntax).
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, s.ProcessDueReminders); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	s.store.Subscribe(s.ProcessDueReminders)
	s.ProcessDueReminders()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()
	c.Start()
	s.log.Info("reminder scheduler started", zap.String("schedule", spec))
	return nil
}

// Stop halts the recurring sweeps. In-flight deliveries finish.
func (s *ReminderService) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		c.Stop()
	}
}

// ProcessDueReminders delivers every firing reminder not yet sent.
func (s *ReminderService) ProcessDueReminders() {
	firing := s.store.FiringReminders()

	for _, reminder := range firing {
		s.mu.Lock()
		already := s.sent[reminder.ID]
		s.mu.Unlock()
		if already {
			continue
		}
		s.deliver(reminder)
	}
}

func (s *ReminderService) deliver(reminder models.Reminder) {
	message := s.buildMessage(reminder)

	// WhatsApp for E.164 destinations, plain SMS otherwise
	to := s.phone
	channel := "sms"
	if strings.HasPrefix(s.phone, "+") {
		to = "whatsapp:" + s.phone
		channel = "whatsapp"
	}

	sid, err := s.notifier.Send(to, message)
	status := models.NotificationSent
	errorMsg := ""
	if err != nil {
		s.log.Warn("failed to send reminder",
			zap.String("reminderId", reminder.ID), zap.Error(err))
		status = models.NotificationFailed
		errorMsg = err.Error()
	} else {
		s.log.Info("reminder sent",
			zap.String("reminderId", reminder.ID), zap.String("sid", sid))
	}

	entry := models.NotificationLog{
		ID:           uuid.NewString(),
		ReminderID:   reminder.ID,
		CheckupID:    reminder.CheckupID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       utils.CanonicalDate(time.Now()),
	}

	s.mu.Lock()
	s.logs = append(s.logs, entry)
	if status == models.NotificationSent {
		s.sent[reminder.ID] = true
	}
	data, err := json.Marshal(s.logs)
	if err == nil {
		err = s.backend.Save(storage.NotificationsKey, data)
	}
	s.mu.Unlock()
	if err != nil {
		s.log.Error("failed to persist notification log", zap.Error(err))
	}
}

// buildMessage renders the outgoing text. The reminder's own message
// wins; otherwise a default line naming the reminder, its checkup and
// the due time. A checkup the reminder no longer resolves to is named
// "unknown checkup" rather than failing the delivery.
func (s *ReminderService) buildMessage(reminder models.Reminder) string {
	if reminder.Message != "" {
		return reminder.Message
	}

	checkupTitle := "unknown checkup"
	if checkup, ok := s.store.CheckupByID(reminder.CheckupID); ok {
		checkupTitle = checkup.Title
	}
	return fmt.Sprintf("Reminder: %s (%s) due %s",
		reminder.Title, checkupTitle, utils.FormatDateTime(reminder.ReminderDate))
}

// Logs returns a copy of the notification log, oldest first.
func (s *ReminderService) Logs() []models.NotificationLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.NotificationLog(nil), s.logs...)
}
