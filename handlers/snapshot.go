package handlers

import (
	"net/http"

	"aussiemate/cron"
	"aussiemate/upstream"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// SnapshotHandler schedules background roster walks so fetch-all views serve
// from a warm snapshot instead of paging the upstream inline.
type SnapshotHandler struct {
	TaskClient *asynq.Client
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(tc *asynq.Client) *SnapshotHandler {
	return &SnapshotHandler{TaskClient: tc}
}

// RefreshSnapshotHandler enqueues a snapshot refresh. The task carries the
// calling admin's upstream token.
func (sh *SnapshotHandler) RefreshSnapshotHandler(c *gin.Context) {
	if sh.TaskClient == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Background refresh is not configured", "")
		return
	}

	scope := c.DefaultQuery("scope", "all")
	if scope != "all" && scope != "cleaners" && scope != "jobs" {
		utils.JSONError(c, http.StatusBadRequest, "Scope must be all, cleaners or jobs", scope)
		return
	}

	token := upstream.TokenFromContext(c.Request.Context())
	if err := cron.EnqueueSnapshotRefresh(sh.TaskClient, token, scope); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to schedule refresh", err.Error())
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Snapshot refresh scheduled", "scope": scope})
}
