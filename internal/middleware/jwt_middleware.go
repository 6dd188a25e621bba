package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// ActiveUserChecker confirms that a token's subject still exists and is active.
type ActiveUserChecker interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// JWTMiddleware authenticates bearer tokens.
type JWTMiddleware struct {
	tokens *utils.TokenIssuer
	users  ActiveUserChecker
}

// NewJWTMiddleware constructs a JWTMiddleware.
func NewJWTMiddleware(tokens *utils.TokenIssuer, users ActiveUserChecker) *JWTMiddleware {
	return &JWTMiddleware{tokens: tokens, users: users}
}

// Handle returns a Gin middleware that requires a valid Authorization header.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		m.authenticate(c, parts[1])
	}
}

// HandleQueryToken authenticates with the token query parameter. EventSource
// clients cannot set headers.
func (m *JWTMiddleware) HandleQueryToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing token query parameter")
			c.Abort()
			return
		}
		m.authenticate(c, token)
	}
}

func (m *JWTMiddleware) authenticate(c *gin.Context, token string) {
	claims, err := m.tokens.Validate(token)
	if err != nil {
		utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
		c.Abort()
		return
	}

	active, err := m.users.IsActive(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
		c.Abort()
		return
	}
	if !active {
		utils.Error(c, 401, "INVALID_TOKEN", "Account is inactive")
		c.Abort()
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxRole, claims.Role)
	c.Next()
}

// RequireRoles aborts with 403 unless the authenticated role is one of roles.
func RequireRoles(message string, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, GetRole(c)) {
			utils.Error(c, 403, "FORBIDDEN", message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or uuid.Nil.
func GetUserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

// GetRole returns the authenticated role, or "".
func GetRole(c *gin.Context) models.Role {
	v, ok := c.Get(ctxRole)
	if !ok {
		return ""
	}
	role, _ := v.(models.Role)
	return role
}
