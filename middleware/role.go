package middleware

import (
	"net/http"

	"shiftwise/models"

	"github.com/gin-gonic/gin"
)

// RequireManager gates management endpoints. It must run after
// JWTAuthWorkerMiddleware, which puts the caller's role in context.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != models.RoleManager && role != models.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Management privileges required",
			})
			return
		}
		c.Next()
	}
}

// RequireOwner gates endpoints reserved for the company owner.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Owner privileges required",
			})
			return
		}
		c.Next()
	}
}
