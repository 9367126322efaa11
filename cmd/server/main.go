package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"remindbot/api/routes"
	"remindbot/internal/chatbot"
	"remindbot/internal/config"
	"remindbot/internal/database"
	"remindbot/internal/dispatcher"
	"remindbot/internal/events"
	"remindbot/internal/geo"
	"remindbot/internal/reminder"
	"remindbot/internal/scheduler"
	"remindbot/internal/user"
	"remindbot/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.NewForEnvironment(cfg.Server.Environment)
	defer logger.Sync()

	zapLogger := logger.Desugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresConnection(ctx, cfg.Database, zapLogger.Named("database"))
	if err != nil {
		logger.Fatalw("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := reminder.RunMigrations(db); err != nil {
		logger.Fatalw("Failed to run reminder migrations", "error", err)
	}

	eventBus := events.NewEventBus(zapLogger.Named("events"))
	engine := scheduler.NewEngine(zapLogger.Named("scheduler"))

	provider, err := chatbot.NewTelegramProvider(cfg.Chatbot, zapLogger.Named("telegram"))
	if err != nil {
		logger.Fatalw("Failed to initialize telegram provider", "error", err)
	}

	var cleaner *dispatcher.SelfCleaner
	if cfg.Cleanup.Enabled {
		cleaner = dispatcher.NewSelfCleaner(engine, provider, time.Duration(cfg.Cleanup.Delay)*time.Second, zapLogger.Named("cleanup"))
	}

	var dispatchOpts []dispatcher.Option
	if cleaner.Enabled() && cfg.Cleanup.DeleteReminders {
		dispatchOpts = append(dispatchOpts, dispatcher.WithCleaner(cleaner))
	}
	d := dispatcher.New(provider, eventBus, zapLogger.Named("dispatcher"), dispatchOpts...)
	engine.SetDispatch(d.Fire)

	repo := reminder.NewGormRepository(db, zapLogger.Named("repository"), chatbot.DayAliases)
	reminderService := reminder.NewService(repo, engine, eventBus, nil, zapLogger.Named("reminder"))
	accessService := user.NewAccessService(repo, cfg.Chatbot.AdminIDs, eventBus, zapLogger.Named("access"))

	synced, err := accessService.SyncAdmins(ctx)
	if err != nil {
		logger.Fatalw("Failed to sync admins", "error", err)
	}
	logger.Infow("Admins synced", "admins", len(cfg.Chatbot.AdminIDs), "added", synced)

	rehydrator := reminder.NewRehydrator(repo, engine, zapLogger.Named("rehydrator"))
	armed, err := rehydrator.Run(ctx)
	if err != nil {
		// rows that could not be armed were logged; the rest are live
		logger.Errorw("Rehydration incomplete", "armed", armed, "error", err)
	}

	if cfg.Scheduler.Enabled {
		if cfg.Scheduler.ReconcileInterval > 0 {
			interval := time.Duration(cfg.Scheduler.ReconcileInterval) * time.Second
			err := engine.ScheduleEvery(interval, func(jobCtx context.Context) {
				if _, err := rehydrator.Reconcile(jobCtx); err != nil {
					zapLogger.Warn("Reconcile failed", zap.Error(err))
				}
			})
			if err != nil {
				logger.Fatalw("Invalid reconcile interval", "error", err)
			}
		}
		if err := engine.Start(ctx); err != nil {
			logger.Fatalw("Failed to start scheduler", "error", err)
		}
	} else {
		logger.Info("Reminder scheduler disabled")
	}

	var replyCleaner chatbot.ReplyCleaner
	if cleaner.Enabled() {
		replyCleaner = cleaner
	}
	processor := chatbot.NewCommandProcessor(
		reminderService,
		accessService,
		geo.NewResolver(zapLogger.Named("geo")),
		chatbot.TextsFor(cfg.Chatbot.Locale),
		zapLogger.Named("commands"),
	)
	chatbotService := chatbot.NewChatbotService(provider, processor, replyCleaner, zapLogger.Named("chatbot"), cfg.Chatbot)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := routes.Dependencies{
		DatabaseCheck: func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
		Scheduler:     engine,
		Logger:        logger,
	}

	pollingDone := make(chan struct{})
	switch cfg.Chatbot.Mode {
	case config.ModeWebhook:
		deps.Chatbot = chatbotService
		if err := provider.SetWebhook(cfg.Chatbot.WebhookURL); err != nil {
			logger.Fatalw("Failed to set webhook", "error", err)
		}
		close(pollingDone)
	default:
		if err := provider.DeleteWebhook(); err != nil {
			logger.Warnw("Failed to delete webhook before polling", "error", err)
		}
		go func() {
			defer close(pollingDone)
			if err := chatbotService.RunPolling(ctx); err != nil {
				logger.Errorw("Polling stopped", "error", err)
			}
		}()
	}

	router := gin.New()
	routes.SetupRoutes(router, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infow("Starting server", "port", cfg.Server.Port, "mode", cfg.Chatbot.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Scheduler.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Server forced to shutdown", "error", err)
	}
	<-pollingDone

	if engine.IsRunning() {
		if err := engine.Stop(shutdownCtx); err != nil {
			logger.Errorw("Failed to stop scheduler gracefully", "error", err)
		}
	}

	if err := eventBus.Close(); err != nil {
		logger.Errorw("Failed to close event bus", "error", err)
	}

	logger.Info("Server exited")
}
