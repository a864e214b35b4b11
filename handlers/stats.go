package handlers

import (
	"net/http"

	"aussiemate/services/stats"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the dashboard landing panel.
type StatsHandler struct {
	StatsService stats.Service
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss stats.Service) *StatsHandler {
	return &StatsHandler{StatsService: ss}
}

// DashboardHandler returns the aggregate counters. Figures whose source
// failed are zero; the panel always renders.
func (sh *StatsHandler) DashboardHandler(c *gin.Context) {
	c.JSON(http.StatusOK, sh.StatsService.Dashboard(c.Request.Context()))
}
