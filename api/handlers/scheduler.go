package handlers

import (
	"net/http"

	"remindbot/internal/scheduler"

	"github.com/gin-gonic/gin"
)

// MetricsSource exposes engine counters
type MetricsSource interface {
	Metrics() scheduler.MetricsSummary
}

// SchedulerHandler serves the engine's trigger metrics
type SchedulerHandler struct {
	source MetricsSource
}

func NewSchedulerHandler(source MetricsSource) *SchedulerHandler {
	return &SchedulerHandler{source: source}
}

func (h *SchedulerHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.source.Metrics())
}
