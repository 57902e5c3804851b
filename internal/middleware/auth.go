package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kanbanbox-be/config"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/utils"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer access token and stores the verified
// identity for handlers. The core never sees credentials, only the
// resulting (userId, orgId) pair.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "missing_token",
				Message: "Authorization header with bearer token required",
			})
			return
		}

		claims, err := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "), cfg.JWTSecret)
		if err != nil || claims.TokenType != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid_token",
				Message: "Invalid or expired access token",
			})
			return
		}

		c.Set(identityKey, models.Identity{UserID: claims.UserID, OrgID: claims.OrgID})
		c.Next()
	}
}

// IdentityFrom returns the verified identity set by AuthMiddleware.
func IdentityFrom(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Identity{}
}
