package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/database"
	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/email"
	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/esign"
	httpAdapter "github.com/rohan-lakhani/eSign-Workflow/internal/adapters/http"
	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/queue"
	"github.com/rohan-lakhani/eSign-Workflow/internal/adapters/storage"
	"github.com/rohan-lakhani/eSign-Workflow/internal/app"
	"github.com/rohan-lakhani/eSign-Workflow/internal/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logger.Error("failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	workflowRepo := database.NewPostgresWorkflowRepository(pool)
	documentRepo := database.NewPostgresDocumentRepository(pool)
	notifier := email.NewSMTPNotifier(cfg.SMTP, logger)
	backend := esign.NewStubBackend()
	dispatcher := app.NewDispatcher(notifier, workflowRepo, cfg.FrontendURL, cfg.BackendURL, logger)

	// With redis configured the notifier worker binary delivers emails;
	// otherwise delivery happens in-process, still after commit.
	var publisher app.NotificationPublisher
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		publisher = app.NewQueuePublisher(queue.NewRedisNotificationQueue(redisClient), logger)
		logger.Info("notification queue enabled", "redis_addr", cfg.RedisAddr)
	} else {
		publisher = app.NewAsyncPublisher(dispatcher, logger)
	}

	documentService := app.NewDocumentService(documentRepo, blobs, logger)
	workflowService := app.NewWorkflowService(
		workflowRepo, documentRepo, blobs, backend, publisher,
		cfg.JWTSecret, cfg.TokenTTL, logger)

	documentHandler := httpAdapter.NewDocumentHandler(documentService, cfg.MaxUploadBytes)
	workflowHandler := httpAdapter.NewWorkflowHandler(workflowService)

	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "esign-api-server",
		})
	})

	httpAdapter.RegisterRoutes(router, documentHandler, workflowHandler, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting eSign API server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
