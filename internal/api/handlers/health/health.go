package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康檢查
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
