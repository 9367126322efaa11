package routes

import (
	"remindbot/api/handlers"
	"remindbot/api/middleware"
	"remindbot/internal/chatbot"
	"remindbot/internal/scheduler"
	"remindbot/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Scheduler is what the HTTP surface reads from the engine
type Scheduler interface {
	handlers.SchedulerStatus
	Metrics() scheduler.MetricsSummary
}

// Dependencies wires the handlers. Chatbot is nil in polling mode, which
// leaves the webhook route unregistered.
type Dependencies struct {
	DatabaseCheck handlers.DatabaseCheck
	Scheduler     Scheduler
	Chatbot       chatbot.ChatbotService
	Logger        *logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.RequestLogging(deps.Logger))
	router.Use(gin.Recovery())

	healthHandler := handlers.NewHealthHandler(deps.DatabaseCheck, deps.Scheduler, deps.Logger)
	schedulerHandler := handlers.NewSchedulerHandler(deps.Scheduler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)
		v1.GET("/scheduler/metrics", schedulerHandler.Metrics)

		if deps.Chatbot != nil {
			webhookHandler := handlers.NewWebhookHandler(deps.Chatbot, deps.Logger)
			v1.POST("/telegram/webhook", webhookHandler.HandleTelegramWebhook)
		}
	}

	router.GET("/health", healthHandler.Check)
}
