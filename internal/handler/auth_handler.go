package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/ecolux_api/internal/middleware"
	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, gin.H{
		"message":      "User created successfully",
		"access_token": res.AccessToken,
		"user":         res.User,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, res)
}

// Profile handles GET /api/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	acc, err := h.authService.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, profileBody(acc))
}

// profileBody flattens the account and its role-specific profile.
func profileBody(acc *models.Account) gin.H {
	body := gin.H{
		"id":         acc.User.ID,
		"email":      acc.User.Email,
		"role":       acc.User.Role,
		"created_at": acc.User.CreatedAt,
	}
	switch p := acc.Profile.(type) {
	case *models.CustomerProfile:
		body["first_name"] = p.FirstName
		body["last_name"] = p.LastName
		body["phone"] = p.Phone
		body["address"] = p.Address
		body["total_co2_saved"] = p.TotalCO2Saved
		body["trees_equivalent"] = p.TreesEquivalent
	case *models.BusinessProfile:
		body["company_name"] = p.CompanyName
		body["contact_person"] = p.ContactPerson
		body["business_type"] = p.BusinessType
		body["tax_id"] = p.TaxID
		body["company_size"] = p.CompanySize
	}
	return body
}
