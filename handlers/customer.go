package handlers

import (
	"net/http"

	"aussiemate/paginate"
	"aussiemate/services/customer"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves the customer views.
type CustomerHandler struct {
	CustomerService customer.Service
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs customer.Service) *CustomerHandler {
	return &CustomerHandler{CustomerService: cs}
}

// ListCustomersHandler returns one page of customers.
func (ch *CustomerHandler) ListCustomersHandler(c *gin.Context) {
	var params customer.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	result, err := ch.CustomerService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch customers")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCustomerHandler returns a single customer by ID.
func (ch *CustomerHandler) GetCustomerHandler(c *gin.Context) {
	cust, err := ch.CustomerService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch customer")
		return
	}
	c.JSON(http.StatusOK, cust)
}

// GetCustomerJobsHandler returns one page of a customer's jobs.
func (ch *CustomerHandler) GetCustomerJobsHandler(c *gin.Context) {
	var params paginate.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	jobs, meta, err := ch.CustomerService.Jobs(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch customer jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": jobs, "meta": meta})
}

// GetCustomerReviewsHandler returns one page of reviews a customer has left.
func (ch *CustomerHandler) GetCustomerReviewsHandler(c *gin.Context) {
	var params paginate.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid list parameters", err.Error())
		return
	}
	reviews, meta, err := ch.CustomerService.Reviews(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch customer reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": reviews, "meta": meta})
}
