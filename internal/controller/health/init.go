package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	healthCheckPath     = "/health"
	selfHealthCheckPath = "/health/self"
)

func Init(router gin.IRoutes) {
	router.GET(healthCheckPath, Health)
	router.GET(selfHealthCheckPath, Health)
}

// Health reports liveness. The model is loaded before the router is built, so a
// running process can always serve predictions.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "true"})
}
