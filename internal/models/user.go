package models

import "time"

// User is a student account with the medical profile collected at
// registration. Accounts are created once and never updated or deleted.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	// Password holds the bcrypt hash. It never leaves the server.
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// DateOfBirth is normalized to YYYY-MM-DD before insert.
	DateOfBirth         string    `json:"date_of_birth"`
	Gender              string    `json:"gender"`
	StudentID           string    `gorm:"uniqueIndex" json:"student_id"`
	BloodType           *string   `json:"blood_type"`
	EmergencyContact    string    `json:"emergency_contact"`
	MedicalConditions   *string   `json:"medical_conditions"`
	Allergies           *string   `json:"allergies"`
	CurrentMedications  *string   `json:"current_medications"`
	ImmunizationHistory *string   `json:"immunization_history"`
	MedicalDevices      *string   `json:"medical_devices"`
	CreatedAt           time.Time `json:"created_at"`
}
