package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/ecolux_api/internal/middleware"
	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// AnalyticsHandler serves the dashboards.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Business handles GET /api/analytics/business
func (h *AnalyticsHandler) Business(c *gin.Context) {
	dash, err := h.analyticsService.BusinessDashboard(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, dash)
}

// History handles GET /api/analytics/business/history
func (h *AnalyticsHandler) History(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a number")
			return
		}
		limit = l
	}

	rows, err := h.analyticsService.History(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, rows)
}

// Customer handles GET /api/analytics/customer
func (h *AnalyticsHandler) Customer(c *gin.Context) {
	dash, err := h.analyticsService.CustomerDashboard(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, dash)
}
