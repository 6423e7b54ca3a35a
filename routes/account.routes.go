package routes

import (
	"tapcare/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterAccountRoutes(router *gin.Engine, accountController *controllers.AccountController) {
	api := router.Group("/api")
	{
		api.POST("/register", accountController.Register)
		api.POST("/login", accountController.Login)
	}
}
