package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Liveness answers the API root with a plain-text banner. The message is part
// of the public contract and used by uptime probes.
func Liveness(c *gin.Context) {
	c.String(http.StatusOK, "API is running....")
}

// Health reports process health for load balancers and orchestrators.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
