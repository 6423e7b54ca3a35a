package routes

import (
	"tapcare/internal/controllers"
	"tapcare/internal/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterDashboardRoutes(router *gin.Engine, dashboardController *controllers.DashboardController) {
	router.GET("/dashboard", dashboardController.Render)
}

func RegisterHealthRoutes(router *gin.Engine) {
	router.GET("/api/health", controllers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
