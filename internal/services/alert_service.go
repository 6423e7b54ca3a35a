package services

import (
	"tapcare/internal/models"
	"tapcare/internal/repository"

	"go.uber.org/zap"
)

// AlertInput carries an emergency alert submission. UserID, Latitude and
// Longitude are pointers so that an absent field is distinguishable from a
// legitimate zero value: coordinates of 0 are on the globe and must pass.
type AlertInput struct {
	UserID           *uint
	FirstName        string
	LastName         string
	StudentID        string
	EmergencyContact string
	Latitude         *float64
	Longitude        *float64
}

// AlertService records emergency alerts and lists them for the API and the
// dashboard.
type AlertService struct {
	alerts repository.AlertRepository
	log    *zap.Logger
}

func NewAlertService(alerts repository.AlertRepository, log *zap.Logger) *AlertService {
	return &AlertService{alerts: alerts, log: log}
}

// Submit validates presence of every field and inserts one alert row with a
// server-assigned alert time.
func (s *AlertService) Submit(in AlertInput) (uint, error) {
	if in.UserID == nil || in.FirstName == "" || in.LastName == "" ||
		in.StudentID == "" || in.EmergencyContact == "" ||
		in.Latitude == nil || in.Longitude == nil {
		return 0, errMissingFields()
	}

	alert := &models.Alert{
		UserID:           *in.UserID,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		StudentID:        in.StudentID,
		EmergencyContact: in.EmergencyContact,
		Latitude:         *in.Latitude,
		Longitude:        *in.Longitude,
	}

	if err := s.alerts.CreateAlert(alert); err != nil {
		return 0, err
	}

	s.log.Warn("emergency alert recorded",
		zap.Uint("alert_id", alert.ID),
		zap.Uint("user_id", alert.UserID),
		zap.String("student_id", alert.StudentID),
		zap.Float64("latitude", alert.Latitude),
		zap.Float64("longitude", alert.Longitude))

	return alert.ID, nil
}

// List returns all alerts ordered by alert time descending.
func (s *AlertService) List() ([]models.Alert, error) {
	return s.alerts.FindAllAlerts()
}
