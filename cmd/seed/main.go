package main

import (
	"log"
	"time"

	"tapcare/database"
	"tapcare/internal/models"
	"tapcare/internal/utils"

	"github.com/joho/godotenv"
)

// Seeds a handful of demo accounts and alerts for local dashboard work.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	password, err := utils.HashPassword("password123")
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}

	bloodType := "O+"
	users := []models.User{
		{
			Username:         "mreyes",
			Email:            "maria.reyes@example.edu",
			Password:         password,
			FirstName:        "Maria",
			LastName:         "Reyes",
			DateOfBirth:      "2003-04-15",
			Gender:           "female",
			StudentID:        "2021-00123",
			BloodType:        &bloodType,
			EmergencyContact: "+639171234567",
		},
		{
			Username:         "jsantos",
			Email:            "jose.santos@example.edu",
			Password:         password,
			FirstName:        "Jose",
			LastName:         "Santos",
			DateOfBirth:      "2002-11-02",
			Gender:           "male",
			StudentID:        "2020-00456",
			EmergencyContact: "+639189876543",
		},
	}

	for i := range users {
		if err := database.DB.Create(&users[i]).Error; err != nil {
			log.Printf("skipping user %s: %v", users[i].Username, err)
		}
	}

	alerts := []models.Alert{
		{
			UserID:           users[0].ID,
			FirstName:        users[0].FirstName,
			LastName:         users[0].LastName,
			StudentID:        users[0].StudentID,
			EmergencyContact: users[0].EmergencyContact,
			Latitude:         14.5995,
			Longitude:        120.9842,
			AlertTime:        time.Now().Add(-10 * time.Minute),
		},
		{
			UserID:           users[1].ID,
			FirstName:        users[1].FirstName,
			LastName:         users[1].LastName,
			StudentID:        users[1].StudentID,
			EmergencyContact: users[1].EmergencyContact,
			Latitude:         14.6091,
			Longitude:        121.0223,
			AlertTime:        time.Now().Add(-2 * time.Minute),
		},
	}

	for i := range alerts {
		if err := database.DB.Create(&alerts[i]).Error; err != nil {
			log.Printf("skipping alert for %s: %v", alerts[i].StudentID, err)
		}
	}

	log.Println("Seeding completed")
}
