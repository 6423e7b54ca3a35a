package controllers

import (
	"errors"
	"net/http"

	"tapcare/internal/metrics"
	"tapcare/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AlertController handles emergency alert submission and listing.
type AlertController struct {
	alerts *services.AlertService
	log    *zap.Logger
}

func NewAlertController(alerts *services.AlertService, log *zap.Logger) *AlertController {
	return &AlertController{alerts: alerts, log: log}
}

// sendAlertRequest uses pointers for the numeric fields so an omitted value
// is distinguishable from an explicit zero coordinate.
type sendAlertRequest struct {
	UserID           *uint    `json:"userId"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	StudentID        string   `json:"studentId"`
	EmergencyContact string   `json:"emergencyContact"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

// SendAlert godoc
// @Summary Record an emergency alert
// @Description Persist an alert with the student's identity snapshot and location
// @Tags alert
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{} "Emergency alert sent successfully"
// @Failure 400 {object} map[string]interface{} "Missing required fields"
// @Router /api/send-alert [post]
func (ac *AlertController) SendAlert(c *gin.Context) {
	metrics.AlertCounter.Inc()

	var req sendAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	alertID, err := ac.alerts.Submit(services.AlertInput{
		UserID:           req.UserID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		StudentID:        req.StudentID,
		EmergencyContact: req.EmergencyContact,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Message})
			return
		}
		ac.log.Error("alert submission failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Emergency alert sent successfully",
		"alertId": alertID,
	})
}

// GetAlerts godoc
// @Summary List all emergency alerts
// @Description Return every alert ordered by alert time descending
// @Tags alert
// @Produce json
// @Success 200 {object} map[string]interface{} "Alerts retrieved"
// @Router /api/alerts [get]
func (ac *AlertController) GetAlerts(c *gin.Context) {
	alerts, err := ac.alerts.List()
	if err != nil {
		ac.log.Error("alert listing failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"alerts":  alerts,
	})
}
