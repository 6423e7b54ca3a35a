package models

import "time"

// Alert is a single emergency event. The student identity fields are
// denormalized copies taken at alert time, so the record stays meaningful
// even if the account is gone later. Alerts are append-only.
type Alert struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `json:"user_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	StudentID        string    `json:"student_id"`
	EmergencyContact string    `json:"emergency_contact"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	AlertTime        time.Time `gorm:"autoCreateTime;index" json:"alert_time"`
	Status           string    `json:"status"`
}

// DisplayStatus is what the dashboard and map popups show when no explicit
// status was recorded.
func (a *Alert) DisplayStatus() string {
	if a.Status == "" {
		return "EMERGENCY"
	}
	return a.Status
}
