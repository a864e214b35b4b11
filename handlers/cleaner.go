package handlers

import (
	"net/http"

	"aussiemate/paginate"
	"aussiemate/services/cleaner"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
)

// CleanerHandler serves the cleaner roster views.
type CleanerHandler struct {
	CleanerService cleaner.Service
}

// NewCleanerHandler creates a new CleanerHandler.
func NewCleanerHandler(cs cleaner.Service) *CleanerHandler {
	return &CleanerHandler{CleanerService: cs}
}

// ListCleanersHandler returns one page of cleaners, filtered by display
// status, badge or free-text search.
func (ch *CleanerHandler) ListCleanersHandler(c *gin.Context) {
	var params cleaner.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	result, err := ch.CleanerService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch cleaners")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCleanerHandler returns a single cleaner by ID.
func (ch *CleanerHandler) GetCleanerHandler(c *gin.Context) {
	id := c.Param("id")
	cl, err := ch.CleanerService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch cleaner")
		return
	}
	c.JSON(http.StatusOK, cl)
}

// GetCleanerJobsHandler returns one page of a cleaner's jobs.
func (ch *CleanerHandler) GetCleanerJobsHandler(c *gin.Context) {
	var params paginate.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	jobs, meta, err := ch.CleanerService.Jobs(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch cleaner jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": jobs, "meta": meta})
}
