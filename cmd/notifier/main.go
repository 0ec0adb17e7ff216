package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"business_notification_service/internal/app"
	"business_notification_service/internal/domain/rule"
	"business_notification_service/internal/infra/config"
	idb "business_notification_service/internal/infra/database"
	"business_notification_service/internal/infra/kvstore"
	"business_notification_service/internal/infra/logger"
	"business_notification_service/internal/infra/scheduler"
	"business_notification_service/internal/infra/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; fail through a bare one.
		logger.New(&config.AppConfig{LogLevel: "info"}).Fatalf("Could not load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithField("environment", cfg.Environment).Info("Business notification service starting")

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	redisClient := kvstore.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	log.Info("Redis connection established")

	notifRepo := idb.NewPostgresNotificationRepository(db)
	businessRepo := idb.NewPostgresBusinessRepository(db)
	jobStore := kvstore.NewRedisJobStore(redisClient, log)
	overrideStore := kvstore.NewRedisRuleOverrideStore(redisClient, log)

	catalog := rule.NewCatalog(nil)
	overrides, err := overrideStore.Load(context.Background())
	if err != nil {
		log.WithError(err).Warn("Could not load rule overrides, using catalog defaults")
	} else {
		catalog.ApplyOverrides(overrides)
	}

	notifService := app.NewNotificationService(
		catalog,
		notifRepo,
		overrideStore,
		log,
		time.Duration(cfg.DedupWindowH)*time.Hour,
	)

	scheduleService := app.NewScheduleService(
		jobStore,
		notifService,
		businessRepo,
		businessRepo,
		businessRepo,
		log,
		time.Duration(cfg.RetentionDays)*24*time.Hour,
		cfg.MaxJobAttempts,
	)

	if cfg.TelegramToken != "" && cfg.AdminTelegramID != 0 {
		alerter, err := telegram.NewTelebotAdapter(cfg.TelegramToken)
		if err != nil {
			log.WithError(err).Warn("Could not create Telegram alert client, admin alerts disabled")
		} else {
			scheduleService.SetAdminAlerter(alerter, cfg.AdminTelegramID)
			log.Info("Admin alert channel enabled")
		}
	}

	tickScheduler := scheduler.NewTickScheduler(scheduleService, log, cfg.CronSpecTick)
	if err := tickScheduler.Start(); err != nil {
		log.Fatalf("Could not start scheduler: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	tickScheduler.Stop()
	log.Info("Shut down gracefully")
}
