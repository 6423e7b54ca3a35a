package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary Service liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
