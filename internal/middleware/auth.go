package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/response"
)

// Keys set on the gin context by Auth
const (
	ContextUserID         = "user_id"
	ContextToken          = "jwtToken"
	ContextTokenID        = "token_id"
	ContextTokenExpiresAt = "token_expires_at"
)

// TokenValidator parses a token and rejects revoked ones
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (*auth.Claims, error)
}

// Auth returns a middleware that requires a valid bearer token. Websocket
// upgrades may pass the token as the "token" query parameter instead because
// browsers cannot set headers on them.
func Auth(validator TokenValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		claims, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			message := "Invalid or expired token"
			switch {
			case errors.Is(err, auth.ErrRevokedToken):
				message = "Token has been revoked"
			case errors.Is(err, auth.ErrExpiredToken):
				message = "Token has expired"
			case !errors.Is(err, auth.ErrInvalidToken):
				logger.Warn("Token validation failed", zap.Error(err))
			}
			abortUnauthorized(c, message)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "Invalid user ID format")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextToken, tokenString)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExpiresAt, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if websocket.IsWebSocketUpgrade(c.Request) {
			if token := c.Query("token"); token != "" {
				return token, true
			}
		}
		abortUnauthorized(c, "Authorization header is required")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		abortUnauthorized(c, "Invalid authorization header format")
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}
