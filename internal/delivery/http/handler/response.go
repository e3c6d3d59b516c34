package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

// ErrorResponse is the error envelope returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP statuses. StoreUnavailable stays a
// 500 and is never reported as 404, so clients can tell "absent" from
// "backend unreachable".
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid coordinate"})
	case errors.Is(err, domain.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid parameter"})
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not authorized"})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
	case errors.Is(err, domain.ErrProfileAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "profile already exists"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// callerID extracts the authenticated profile id set by the auth middleware.
func callerID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return id, true
}
