package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requireWorkerID pulls the authenticated worker's ID out of the gin
// context. It aborts with 401 when the auth middleware did not run.
func requireWorkerID(c *gin.Context) (string, bool) {
	id := c.GetString("workerID")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// requireCompanyID pulls the authenticated worker's company out of the
// gin context.
func requireCompanyID(c *gin.Context) (string, bool) {
	id := c.GetString("companyID")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}
