package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GTDGit/ecolux_api/internal/middleware"
	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// OrderHandler handles order HTTP endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder handles POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req struct {
		QuoteID   string  `json:"quote_id"`
		AddressID *string `json:"address_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if strings.TrimSpace(req.QuoteID) == "" {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "quote_id is required")
		return
	}
	in := service.PlaceOrderInput{}
	var err error
	if in.QuoteID, err = uuid.Parse(strings.TrimSpace(req.QuoteID)); err != nil {
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
		return
	}
	if req.AddressID != nil && *req.AddressID != "" {
		addressID, err := uuid.Parse(*req.AddressID)
		if err != nil {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Address not found")
			return
		}
		in.AddressID = &addressID
	}

	order, err := h.orderService.Place(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, orders)
}
