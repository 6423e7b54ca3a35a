package controllers

import (
	"net/http"
	"time"

	"tapcare/internal/services"
	"tapcare/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardController renders the emergency dashboard. Each request is a
// fresh render over the full alert set; refresh is manual unless an
// auto-refresh interval was configured explicitly.
type DashboardController struct {
	alerts             *services.AlertService
	autoRefreshSeconds int
	log                *zap.Logger
}

func NewDashboardController(alerts *services.AlertService, autoRefreshSeconds int, log *zap.Logger) *DashboardController {
	return &DashboardController{alerts: alerts, autoRefreshSeconds: autoRefreshSeconds, log: log}
}

// Render godoc
// @Summary Render the emergency dashboard
// @Description One self-contained HTML document with the alert list and map
// @Tags dashboard
// @Produce html
// @Success 200 {string} string "text/html"
// @Failure 500 {string} string "text/html error page"
// @Router /dashboard [get]
func (dc *DashboardController) Render(c *gin.Context) {
	alerts, err := dc.alerts.List()
	if err != nil {
		dc.log.Error("dashboard listing failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		c.HTML(http.StatusInternalServerError, "dashboard_error", gin.H{"Message": "Internal server error"})
		return
	}

	data, err := views.NewDashboardData(alerts, time.Now(), dc.autoRefreshSeconds)
	if err != nil {
		dc.log.Error("dashboard view build failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		c.HTML(http.StatusInternalServerError, "dashboard_error", gin.H{"Message": "Internal server error"})
		return
	}

	c.HTML(http.StatusOK, "dashboard", data)
}
