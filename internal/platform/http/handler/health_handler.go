// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootMessage is the banner returned by GET /.
const RootMessage = "Task hive server is running!"

// Health handles the /healthz endpoint used for liveness checks.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Root answers GET / so a browser or load balancer can see the server is up.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": RootMessage})
}
