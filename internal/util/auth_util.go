package util

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/response"
)

// TokenInfo describes the access token of the current request
type TokenInfo struct {
	ID        string
	ExpiresAt time.Time
}

// GetUserID returns the authenticated user id. It writes a 401 and returns
// false when the auth middleware did not run.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}

// GetTokenInfo returns the jti and expiry of the current token
func GetTokenInfo(c *gin.Context) (TokenInfo, bool) {
	id := c.GetString(middleware.ContextTokenID)
	if id == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Token ID not found in context")
		return TokenInfo{}, false
	}
	expiresAt, _ := c.Get(middleware.ContextTokenExpiresAt)
	exp, _ := expiresAt.(time.Time)
	return TokenInfo{ID: id, ExpiresAt: exp}, true
}
