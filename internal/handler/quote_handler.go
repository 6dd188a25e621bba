package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GTDGit/ecolux_api/internal/middleware"
	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// QuoteHandler handles quote HTTP endpoints.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler constructs a QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// CreateQuote handles POST /api/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req struct {
		ProductID     string               `json:"product_id"`
		Configuration models.Configuration `json:"configuration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if strings.TrimSpace(req.ProductID) == "" {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "product_id is required")
		return
	}
	productID, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), middleware.GetUserID(c), service.CreateQuoteInput{
		ProductID:     productID,
		Configuration: req.Configuration,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{
		"message": "Quote created successfully",
		"quote": gin.H{
			"id":                   quote.ID,
			"total_price":          quote.TotalPrice,
			"co2_savings":          quote.CO2Savings,
			"sustainability_score": quote.SustainabilityScore,
		},
	})
}

// ListQuotes handles GET /api/quotes
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.quoteService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, quotes)
}

// GetQuote handles GET /api/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := pathID(c, "Quote not found")
	if !ok {
		return
	}
	quote, err := h.quoteService.Get(c.Request.Context(), id, middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, quote)
}
