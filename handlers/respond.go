package handlers

import (
	"errors"
	"net/http"
	"time"

	auditRepoPkg "aussiemate/database/repository/audit"
	"aussiemate/models"
	"aussiemate/upstream"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondServiceError maps service errors onto HTTP responses. Upstream auth
// failures surface as 401 so the dashboard drops its session; upstream API
// errors keep their status code.
func respondServiceError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, upstream.ErrUnauthorized) {
		utils.JSONError(c, http.StatusUnauthorized, "Session expired, please sign in again", "")
		return
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		utils.JSONError(c, apiErr.StatusCode, fallback, apiErr.Message)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, fallback, err.Error())
}

// recordAudit appends an admin decision to the audit trail. Best effort: a
// write failure only logs, it never fails the admin's request.
func recordAudit(repo auditRepoPkg.AuditRepository, c *gin.Context, action, targetType, targetID, outcome, strategy, detail string) {
	if repo == nil {
		return
	}
	rec := &models.AuditRecord{
		ID:         uuid.New().String(),
		Actor:      c.GetString("adminEmail"),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Outcome:    outcome,
		Strategy:   strategy,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	if err := repo.Insert(rec); err != nil {
		zap.L().Warn("failed to append audit record",
			zap.String("action", action),
			zap.String("targetId", targetID),
			zap.Error(err))
	}
}
