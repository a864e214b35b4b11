package handlers

import (
	"net/http"

	"aussiemate/services/payment"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves the payments/escrow views.
type PaymentHandler struct {
	PaymentService payment.Service
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps payment.Service) *PaymentHandler {
	return &PaymentHandler{PaymentService: ps}
}

// ListTransactionsHandler returns one page of transactions.
func (ph *PaymentHandler) ListTransactionsHandler(c *gin.Context) {
	var params payment.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	result, err := ph.PaymentService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch transactions")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTransactionHandler returns the transaction view of one job, with live
// gateway detail when available.
func (ph *PaymentHandler) GetTransactionHandler(c *gin.Context) {
	txn, err := ph.PaymentService.Get(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}
