package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"checkup-tracker/config"
	"checkup-tracker/query"
	"checkup-tracker/services"
	"checkup-tracker/storage"
	"checkup-tracker/store"
	"checkup-tracker/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	configPath := os.Getenv("CHECKUP_CONFIG")
	if configPath == "" {
		configPath = "~/.checkup-tracker/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	backend, err := openBackend(cfg)
	if err != nil {
		logger.Fatal("failed to open storage backend", zap.Error(err))
	}
	defer backend.Close()

	st := store.New(backend, logger)
	printDashboard(st)

	if !cfg.Notifications.Enabled {
		return
	}

	if !utils.ValidatePhone(cfg.Notifications.Phone) {
		logger.Fatal("invalid notification phone number",
			zap.String("phone", cfg.Notifications.Phone))
	}

	svc := services.NewReminderService(st, backend, services.NewTwilioNotifier(),
		cfg.Notifications.Phone, logger)
	if err := svc.StartScheduler(cfg.Notifications.Schedule); err != nil {
		logger.Fatal("failed to start reminder scheduler", zap.Error(err))
	}
	defer svc.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
}

func openBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return storage.NewSQLiteBackend(cfg.Storage.DatabaseRef)
	case config.BackendPostgres:
		db, err := config.ConnectDB(cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return storage.NewGormBackend(db)
	default:
		return storage.NewFileBackend(cfg.Storage.DataDir)
	}
}

func printDashboard(st *store.Store) {
	overview := query.DashboardOverview(st.Checkups(), st.Reminders(), time.Now())

	fmt.Printf("Checkups:   %d\n", overview.TotalCheckups)
	fmt.Printf("Reminders:  %d\n", overview.TotalReminders)
	fmt.Printf("Categories: %d\n", overview.TotalCategories)

	if len(overview.UpcomingCheckups) > 0 {
		fmt.Println("\nUpcoming checkups:")
		for _, c := range overview.UpcomingCheckups {
			fmt.Printf("  %-30s %s — %s (%d days from now)\n",
				c.Title, c.Category, utils.FormatDate(c.Date), utils.DaysUntil(c.Date))
		}
	}

	firing := st.FiringReminders()
	if len(firing) > 0 {
		fmt.Println("\nDue reminders:")
		for _, r := range firing {
			fmt.Printf("  %-30s due %s%s\n",
				r.Title, utils.FormatDateTime(r.ReminderDate), overdueLabel(r.ReminderDate))
		}
	}
}

// overdueLabel renders how many whole days a due date lies behind
// today, or nothing for reminders that fired earlier the same day.
func overdueLabel(reminderDate string) string {
	due, err := utils.ParseDate(reminderDate)
	if err != nil {
		return ""
	}
	if days := utils.DaysBetween(due, time.Now()); days > 0 {
		return fmt.Sprintf(" (%d days overdue)", days)
	}
	return ""
}
