package handlers

import (
	"fmt"
	"net/http"
	"strings"

	auditRepoPkg "aussiemate/database/repository/audit"
	"aussiemate/models"
	"aussiemate/services/cleaner"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
)

// KYCHandler serves the verification queue and the KYC decision endpoints.
// Every decision is appended to the audit trail together with the upstream
// call shape that carried it.
type KYCHandler struct {
	CleanerService cleaner.Service
	AuditRepo      auditRepoPkg.AuditRepository
}

// NewKYCHandler creates a new KYCHandler.
func NewKYCHandler(cs cleaner.Service, ar auditRepoPkg.AuditRepository) *KYCHandler {
	return &KYCHandler{CleanerService: cs, AuditRepo: ar}
}

// ListKYCHandler returns one page of the verification queue.
func (kh *KYCHandler) ListKYCHandler(c *gin.Context) {
	var params cleaner.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	result, err := kh.CleanerService.KYCList(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch verification queue")
		return
	}
	c.JSON(http.StatusOK, result)
}

// KYCStatsHandler returns the verification queue counters.
func (kh *KYCHandler) KYCStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, kh.CleanerService.KYCStats(c.Request.Context()))
}

// SetDocumentStatusHandler approves or rejects one KYC document.
func (kh *KYCHandler) SetDocumentStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A document status is required", err.Error())
		return
	}
	verdict := strings.ToLower(req.Status)
	if verdict != "approved" && verdict != "rejected" {
		utils.JSONError(c, http.StatusBadRequest, "Document status must be approved or rejected", "")
		return
	}

	id, docKey := c.Param("id"), c.Param("docKey")
	strategy, err := kh.CleanerService.SetDocumentStatus(c.Request.Context(), id, docKey, verdict)
	if err != nil {
		respondServiceError(c, err, "Failed to update document status")
		return
	}
	recordAudit(kh.AuditRepo, c, models.AuditActionDocumentVerdict, "cleaner", id, verdict, strategy,
		fmt.Sprintf("document=%s note=%s", docKey, req.Note))
	c.JSON(http.StatusOK, gin.H{"message": "Document status updated", "status": verdict})
}

// SetKYCVerifiedHandler flips a cleaner's overall verified flag.
func (kh *KYCHandler) SetKYCVerifiedHandler(c *gin.Context) {
	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A verified flag is required", err.Error())
		return
	}

	id := c.Param("id")
	strategy, err := kh.CleanerService.SetKYCVerified(c.Request.Context(), id, *req.Verified)
	if err != nil {
		respondServiceError(c, err, "Failed to update verification")
		return
	}
	recordAudit(kh.AuditRepo, c, models.AuditActionKYCVerified, "cleaner", id,
		fmt.Sprintf("verified=%t", *req.Verified), strategy, "")
	c.JSON(http.StatusOK, gin.H{"message": "Verification updated", "verified": *req.Verified})
}

// SetKYCStatusHandler overrides a cleaner's KYC status value.
func (kh *KYCHandler) SetKYCStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A KYC status is required", err.Error())
		return
	}

	id := c.Param("id")
	strategy, err := kh.CleanerService.SetKYCStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update KYC status")
		return
	}
	recordAudit(kh.AuditRepo, c, models.AuditActionKYCStatus, "cleaner", id, req.Status, strategy, "")
	c.JSON(http.StatusOK, gin.H{"message": "KYC status updated", "status": req.Status})
}

// VerifyABNHandler checks an ABN locally and, when the checksum holds,
// records the verification upstream.
func (kh *KYCHandler) VerifyABNHandler(c *gin.Context) {
	var req struct {
		ABN string `json:"abn" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "An ABN is required", err.Error())
		return
	}

	id := c.Param("id")
	result, strategy, err := kh.CleanerService.VerifyABN(c.Request.Context(), id, req.ABN)
	if err != nil {
		respondServiceError(c, err, "Failed to verify ABN")
		return
	}
	if result.Valid {
		recordAudit(kh.AuditRepo, c, models.AuditActionABNVerify, "cleaner", id, "verified", strategy,
			fmt.Sprintf("abn=%s", result.ABN))
	}
	c.JSON(http.StatusOK, result)
}
