package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"tapcare/database"
	"tapcare/internal/controllers"
	"tapcare/internal/logger"
	"tapcare/internal/metrics"
	"tapcare/internal/middleware"
	"tapcare/internal/repository"
	"tapcare/internal/services"
	"tapcare/internal/views"
	"tapcare/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables; absence is fine in containerized deploys.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger.Init()
	zlog := logger.Get()
	defer zlog.Sync()

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		zlog.Fatal("failed to run database migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	alertRepo := repository.NewAlertRepository(database.DB)

	// Services
	accountService := services.NewAccountService(userRepo, zlog)
	alertService := services.NewAlertService(alertRepo, zlog)

	// Dashboard refresh is manual by default. A non-zero interval here is
	// the only way the page ever schedules a reload.
	autoRefreshSeconds := 0
	if v := os.Getenv("DASHBOARD_AUTO_REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			autoRefreshSeconds = n
		}
	}

	// Controllers
	accountController := controllers.NewAccountController(accountService, zlog)
	alertController := controllers.NewAlertController(alertService, zlog)
	dashboardController := controllers.NewDashboardController(alertService, autoRefreshSeconds, zlog)

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.CORS())
	router.Use(metrics.Middleware())
	router.SetHTMLTemplate(views.Templates())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "TapCare Emergency API is running",
			"version":  "1.0.0",
			"status":   "healthy",
			"database": "PostgreSQL",
		})
	})

	routes.RegisterAccountRoutes(router, accountController)
	routes.RegisterAlertRoutes(router, alertController)
	routes.RegisterDashboardRoutes(router, dashboardController)
	routes.RegisterHealthRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	zlog.Info("server starting",
		zap.String("port", port),
		zap.Int("dashboard_auto_refresh_seconds", autoRefreshSeconds))

	if err := server.ListenAndServe(); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
