package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// BusinessHandler handles the business back-office endpoints.
type BusinessHandler struct {
	businessService *service.BusinessService
	quoteService    *service.QuoteService
}

// NewBusinessHandler constructs a BusinessHandler.
func NewBusinessHandler(businessService *service.BusinessService, quoteService *service.QuoteService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService, quoteService: quoteService}
}

// ListQuotes handles GET /api/business/quotes
func (h *BusinessHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.businessService.Quotes(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, quotes)
}

// UpdateQuoteStatus handles PUT /api/business/quotes/:id
func (h *BusinessHandler) UpdateQuoteStatus(c *gin.Context) {
	id, ok := pathID(c, "Quote not found")
	if !ok {
		return
	}
	var req struct {
		Status models.QuoteStatus `json:"status"`
		Notes  string             `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	quote, err := h.quoteService.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"message": "Quote status updated successfully",
		"quote":   quote,
	})
}

// ListCustomers handles GET /api/business/customers
func (h *BusinessHandler) ListCustomers(c *gin.Context) {
	customers, err := h.businessService.Customers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, customers)
}
