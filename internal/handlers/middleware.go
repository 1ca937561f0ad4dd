package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys for the identity attached by authMiddleware.
const (
	ctxUserID   = "userId"
	ctxUsername = "username"
)

// authMiddleware is the per-request gate: it extracts the bearer token,
// verifies it, and either attaches the decoded claims to the context or
// aborts with 401 without invoking the downstream handler. Nothing is
// carried between requests.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Next()
}
