package handlers

import (
	"net/http"
	"strconv"

	auditRepoPkg "aussiemate/database/repository/audit"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
)

// AuditHandler serves the admin decision trail.
type AuditHandler struct {
	AuditRepo auditRepoPkg.AuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(ar auditRepoPkg.AuditRepository) *AuditHandler {
	return &AuditHandler{AuditRepo: ar}
}

// ListAuditHandler returns the most recent audit records, optionally scoped
// to one target.
func (ah *AuditHandler) ListAuditHandler(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	targetType := c.Query("targetType")
	targetID := c.Query("targetId")

	var records interface{}
	var err error
	if targetType != "" && targetID != "" {
		records, err = ah.AuditRepo.ListByTarget(targetType, targetID, limit)
	} else {
		records, err = ah.AuditRepo.List(limit)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch audit trail", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}
