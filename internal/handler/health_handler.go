package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/ecolux_api/internal/utils"
)

var startTime = time.Now()

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth responds with service and database status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	code, status, dbStatus := http.StatusOK, "healthy", "connected"
	if err := h.db.PingContext(ctx); err != nil {
		code, status, dbStatus = http.StatusServiceUnavailable, "degraded", "disconnected"
	}

	utils.Success(c, code, gin.H{
		"message":  "Eco-luxury quoting API",
		"status":   status,
		"database": dbStatus,
		"uptime":   int(time.Since(startTime).Seconds()),
	})
}
