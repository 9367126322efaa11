package handlers

import (
	"io"
	"net/http"

	"remindbot/api/middleware"
	"remindbot/internal/chatbot"
	"remindbot/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxUpdateSize bounds a single webhook body
const maxUpdateSize = 1 << 20

// WebhookHandler handles Telegram webhook requests
type WebhookHandler struct {
	chatbotService chatbot.ChatbotService
	logger         *logger.Logger
}

// NewWebhookHandler creates a new WebhookHandler instance
func NewWebhookHandler(chatbotService chatbot.ChatbotService, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		chatbotService: chatbotService,
		logger:         logger,
	}
}

// HandleTelegramWebhook processes incoming Telegram webhook updates. It
// always answers 200 so Telegram does not redeliver an update the bot
// cannot handle.
func (h *WebhookHandler) HandleTelegramWebhook(c *gin.Context) {
	log := middleware.RequestLogger(c, h.logger)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUpdateSize))
	if err != nil {
		log.Errorw("Failed to read webhook body", "error", err)
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if len(body) == 0 {
		log.Warnw("Received empty webhook body")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.chatbotService.HandleWebhook(c.Request.Context(), body); err != nil {
		log.Errorw("Failed to process webhook",
			"error", err,
			"body_size", len(body))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	log.Debugw("Webhook processed successfully", "body_size", len(body))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
