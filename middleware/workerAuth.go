package middleware

import (
	"net/http"
	"strings"
	"time"

	workerRepo "shiftwise/database/repository/worker"
	"shiftwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// JWTAuthWorkerMiddleware authenticates requests with a Bearer token and
// stores the caller's workerID, companyID and role in the gin context.
// A cached auth session admits the request without touching Mongo; on a
// cache miss the stored token hash is checked against the worker record
// and the session is re-warmed.
//
// Deactivation and sign-out both drop the cached session, so the cache
// path never has to re-check the active flag.
func JWTAuthWorkerMiddleware(workers workerRepo.WorkerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		workerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || workerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		if computedHash == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		// Cache path.
		session, err := utils.GetAuthSession(workerID)
		if err == nil {
			if session.TokenHash != computedHash {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token mismatch",
				})
				return
			}
			utils.RefreshAuthSession(workerID)
			c.Set("workerID", session.WorkerID)
			c.Set("companyID", session.CompanyID)
			c.Set("role", session.Role)
			c.Next()
			return
		} else if err != redis.Nil {
			logger.Warn("Auth cache lookup failed, falling back to Mongo",
				zap.String("workerID", workerID), zap.Error(err))
		}

		// Cache miss: check the stored token hash on the worker record.
		proj := bson.M{"id": 1, "companyId": 1, "role": 1, "tokenHash": 1, "active": 1}
		rec, err := workers.GetByIDWithProjection(workerID, proj)
		if err != nil || rec == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication error",
			})
			return
		}
		if !rec.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "This account has been deactivated",
			})
			return
		}
		if rec.TokenHash == "" || rec.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Token mismatch",
			})
			return
		}

		if err := utils.SaveAuthSession(utils.AuthSession{
			WorkerID:  rec.ID,
			CompanyID: rec.CompanyID,
			Role:      rec.Role,
			TokenHash: computedHash,
			IssuedAt:  time.Now(),
		}); err != nil {
			logger.Warn("Failed to re-warm auth cache", zap.String("workerID", workerID), zap.Error(err))
		}

		c.Set("workerID", rec.ID)
		c.Set("companyID", rec.CompanyID)
		c.Set("role", rec.Role)
		c.Next()
	}
}
