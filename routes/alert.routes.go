package routes

import (
	"tapcare/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterAlertRoutes(router *gin.Engine, alertController *controllers.AlertController) {
	api := router.Group("/api")
	{
		api.POST("/send-alert", alertController.SendAlert)
		api.GET("/alerts", alertController.GetAlerts)
	}
}
