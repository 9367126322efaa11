package handlers

import (
	"context"
	"net/http"
	"time"

	"remindbot/pkg/logger"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// DatabaseCheck reports whether the database answers
type DatabaseCheck func(ctx context.Context) error

// SchedulerStatus is the read-only view of the scheduling engine
type SchedulerStatus interface {
	IsRunning() bool
	Len() int
}

type HealthHandler struct {
	checkDB   DatabaseCheck
	scheduler SchedulerStatus
	logger    *logger.Logger
}

func NewHealthHandler(checkDB DatabaseCheck, scheduler SchedulerStatus, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		checkDB:   checkDB,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Check answers 503 when the database is unreachable. A stopped scheduler
// only marks the service degraded.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	statusCode := http.StatusOK
	checks := gin.H{}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if h.checkDB == nil {
		checks["database"] = "unconfigured"
		status = "error"
		statusCode = http.StatusServiceUnavailable
	} else if err := h.checkDB(ctx); err != nil {
		h.logger.Errorw("Database health check failed", "error", err)
		checks["database"] = "error"
		status = "error"
		statusCode = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.scheduler != nil {
		if h.scheduler.IsRunning() {
			checks["scheduler"] = "running"
		} else {
			checks["scheduler"] = "stopped"
			if status == "ok" {
				status = "degraded"
			}
		}
		checks["armed_triggers"] = h.scheduler.Len()
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "remindbot",
		"checks":    checks,
	})
}
