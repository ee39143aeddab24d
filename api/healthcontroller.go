package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine, hc HealthChecker) {
	r.GET("/api/health", func(c *gin.Context) {
		handleHealth(c, hc)
	})
}

// handleHealth reports this server as up and, when it can, whether the
// summarization API answers its own health route
func handleHealth(c *gin.Context, hc HealthChecker) {
	resp := gin.H{"status": "ok", "upstream": false}
	if hc == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	ok, err := hc.Health(c.Request.Context())
	resp["upstream"] = ok
	if err != nil {
		resp["upstream_error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
