package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/utils"
)

// handleError maps service errors to HTTP responses. Unclassified errors are
// logged and reported as a generic 500.
func handleError(c *gin.Context, err error) {
	msg, public := utils.PublicMessage(err)
	orDefault := func(def string) string {
		if public {
			return msg
		}
		return def
	}

	var ve *utils.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, utils.ErrUnauthorized):
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", orDefault("Unauthorized"))
	case errors.Is(err, utils.ErrForbidden):
		utils.Error(c, http.StatusForbidden, "FORBIDDEN", orDefault("Insufficient permissions"))
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", orDefault("Resource not found"))
	case errors.Is(err, utils.ErrConflict):
		utils.Error(c, http.StatusConflict, "CONFLICT", orDefault("Conflict"))
	case errors.Is(err, utils.ErrUnavailable):
		log.Warn().Err(err).Str("request_id", utils.RequestID(c)).Str("path", c.Request.URL.Path).Msg("Dependency unavailable")
		utils.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
	default:
		log.Error().Err(err).Str("request_id", utils.RequestID(c)).Str("path", c.Request.URL.Path).Msg("Request failed")
		_ = c.Error(err)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func badRequest(c *gin.Context) {
	utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
}

// pathID parses the :id parameter. Malformed ids cannot exist, so they are
// reported with notFound.
func pathID(c *gin.Context, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", notFound)
		return uuid.Nil, false
	}
	return id, true
}
