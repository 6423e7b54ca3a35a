package repository

import (
	"tapcare/internal/models"

	"gorm.io/gorm"
)

// AlertRepository is the storage surface the alert service depends on.
type AlertRepository interface {
	CreateAlert(alert *models.Alert) error
	FindAllAlerts() ([]models.Alert, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (ar *alertRepository) CreateAlert(alert *models.Alert) error {
	return ar.db.Create(alert).Error
}

// FindAllAlerts returns every alert, most recent first. The dashboard and
// the API share this ordering.
func (ar *alertRepository) FindAllAlerts() ([]models.Alert, error) {
	alerts := []models.Alert{}
	err := ar.db.Order("alert_time DESC").Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
