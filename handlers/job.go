package handlers

import (
	"net/http"

	auditRepoPkg "aussiemate/database/repository/audit"
	"aussiemate/models"
	"aussiemate/services/job"
	"aussiemate/status"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
)

// JobHandler serves the job views and the payment status override.
type JobHandler struct {
	JobService job.Service
	AuditRepo  auditRepoPkg.AuditRepository
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(js job.Service, ar auditRepoPkg.AuditRepository) *JobHandler {
	return &JobHandler{JobService: js, AuditRepo: ar}
}

// ListJobsHandler returns one page of jobs, filtered by display status,
// payment status, type, search text or date window.
func (jh *JobHandler) ListJobsHandler(c *gin.Context) {
	var params job.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	result, err := jh.JobService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch jobs")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetJobHandler returns a single job by ID.
func (jh *JobHandler) GetJobHandler(c *gin.Context) {
	j, err := jh.JobService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch job")
		return
	}
	c.JSON(http.StatusOK, j)
}

// SetPaymentStatusHandler overrides a job's payment status. The new value
// must be part of the payment display vocabulary.
func (jh *JobHandler) SetPaymentStatusHandler(c *gin.Context) {
	var req struct {
		PaymentStatus string `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A payment status is required", err.Error())
		return
	}
	if !status.Known(status.CategoryPayment, req.PaymentStatus) {
		utils.JSONError(c, http.StatusBadRequest, "Unknown payment status", req.PaymentStatus)
		return
	}

	id := c.Param("id")
	strategy, err := jh.JobService.SetPaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		respondServiceError(c, err, "Failed to update payment status")
		return
	}
	recordAudit(jh.AuditRepo, c, models.AuditActionPaymentStatus, "job", id, req.PaymentStatus, strategy, "")
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "paymentStatus": req.PaymentStatus})
}
