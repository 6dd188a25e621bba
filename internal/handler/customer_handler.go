package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/ecolux_api/internal/middleware"
	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// CustomerHandler handles a customer's own account endpoints.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// UpdateProfile handles PUT /api/customer/profile
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	profile, err := h.customerService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": gin.H{
			"first_name": profile.FirstName,
			"last_name":  profile.LastName,
			"phone":      profile.Phone,
			"address":    profile.Address,
		},
	})
}

// DeleteAccount handles DELETE /api/customer/profile
func (h *CustomerHandler) DeleteAccount(c *gin.Context) {
	if err := h.customerService.DeleteAccount(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Message(c, http.StatusOK, "Account deleted successfully")
}

// ListAddresses handles GET /api/customer/addresses
func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.customerService.Addresses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, addresses)
}

// AddAddress handles POST /api/customer/addresses
func (h *CustomerHandler) AddAddress(c *gin.Context) {
	var req service.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	address, err := h.customerService.AddAddress(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, gin.H{
		"message": "Address added successfully",
		"address": address,
	})
}

// RemoveAddress handles DELETE /api/customer/addresses/:id
func (h *CustomerHandler) RemoveAddress(c *gin.Context) {
	id, ok := pathID(c, "Address not found")
	if !ok {
		return
	}
	if err := h.customerService.RemoveAddress(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		handleError(c, err)
		return
	}
	utils.Message(c, http.StatusOK, "Address removed successfully")
}
