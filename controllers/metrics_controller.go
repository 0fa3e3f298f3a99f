package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Edumoretti/chatbot-llm/analytics"
)

type MetricsController struct {
	analytics *analytics.Manager
}

func NewMetricsController(analyticsManager *analytics.Manager) *MetricsController {
	return &MetricsController{analytics: analyticsManager}
}

// GetMetrics returns the aggregate counters collected so far.
func (mc *MetricsController) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, mc.analytics.Metrics())
}
