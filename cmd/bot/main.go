package main

import (
	"os"
	"os/signal"
	"syscall"

	"shift-calendar-bot/internal/calendar"
	"shift-calendar-bot/internal/config"
	"shift-calendar-bot/internal/handler"
	"shift-calendar-bot/internal/repository"
	"shift-calendar-bot/internal/service"
	"shift-calendar-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.SetLevel(cfg.LogLevel)
	logrus.WithFields(logrus.Fields{
		"database": cfg.DatabaseURL,
		"timezone": cfg.Location.String(),
	}).Info("Config initialized")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to get database instance")
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.WithError(err).Warn("Failed to enable foreign keys")
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	recordRepo, err := repository.NewGormSourceRecordRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create source record repository")
	}

	eventRepo, err := repository.NewGormAttendanceEventRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance event repository")
	}

	summaryRepo, err := repository.NewGormMonthlySummaryRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create monthly summary repository")
	}

	employeeService := service.NewEmployeeService(employeeRepo)
	calendarService := service.NewCalendarService(
		recordRepo,
		eventRepo,
		summaryRepo,
		calendar.Options{DefaultShift: cfg.DefaultShiftRange},
		cfg.Location,
	)
	importService := service.NewImportService(employeeRepo, recordRepo, eventRepo, summaryRepo)
	statsService := service.NewStatsService(summaryRepo, recordRepo)

	if err := employeeService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.WithError(err).Warn("Failed to initialize admin")
	} else if cfg.BaseAdminChatID != 0 {
		logrus.WithField("chat_id", cfg.BaseAdminChatID).Info("Admin initialized")
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Telegram client")
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client.Bot, employeeService, calendarService, importService, statsService)

	updates := client.Updates()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		botHandler.HandleUpdates(updates)
		close(done)
	}()

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Stop()
	<-done

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database")
	}

	logrus.Info("Bot stopped gracefully")
}
