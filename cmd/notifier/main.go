package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/database"
	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/email"
	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/queue"
	"github.com/rohan-lakhani/eSign-Workflow/internal/app"
	"github.com/rohan-lakhani/eSign-Workflow/internal/config"
)

// The notifier binary drains the notification queue and runs the reminder
// sweep. It requires redis; the API server falls back to in-process delivery
// when no queue is configured.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	if cfg.RedisAddr == "" {
		logger.Error("REDIS_ADDR is required for the notifier worker")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	notificationQueue := queue.NewRedisNotificationQueue(redisClient)
	defer notificationQueue.Close()

	workflowRepo := database.NewPostgresWorkflowRepository(pool)
	documentRepo := database.NewPostgresDocumentRepository(pool)
	notifier := email.NewSMTPNotifier(cfg.SMTP, logger)
	dispatcher := app.NewDispatcher(notifier, workflowRepo, cfg.FrontendURL, cfg.BackendURL, logger)

	worker := app.NewNotifierWorker(ctx, notificationQueue, dispatcher, logger)

	publisher := app.NewQueuePublisher(notificationQueue, logger)
	reminders := app.NewReminderService(workflowRepo, documentRepo, publisher, cfg.ReminderAfter, logger)
	reminderRunner := app.NewReminderRunner(reminders, cfg.ReminderInterval, logger)

	go func() {
		if err := reminderRunner.Start(ctx); err != nil {
			logger.Error("reminder runner error", "error", err)
		}
	}()

	logger.Info("notifier worker started")
	if err := worker.Run(); err != nil && ctx.Err() == nil {
		logger.Error("notifier worker error", "error", err)
	}

	logger.Info("notifier worker stopped")
}
