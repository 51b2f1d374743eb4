package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"petlink/internal/models"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Product{},
		&models.Review{},
		&models.PetLog{},
		&models.Thread{},
		&models.Post{},
		&models.Vote{},
		&models.Favorite{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedBrands()
}

func seedBrands() {
	var count int64
	DB.Model(&models.Brand{}).Count(&count)
	if count > 0 {
		log.Println("Brands already seeded, skipping")
		return
	}

	brands := []models.Brand{
		{Name: "Orijen", Country: "Canada", Description: "Biologically appropriate dry food"},
		{Name: "Royal Canin", Country: "France", Description: "Breed and life-stage specific diets"},
		{Name: "Ziwi Peak", Country: "New Zealand", Description: "Air-dried raw food"},
		{Name: "Hill's", Country: "USA", Description: "Science-backed prescription diets"},
	}

	for _, brand := range brands {
		if err := DB.Create(&brand).Error; err != nil {
			log.Printf("Failed to create brand %s: %v", brand.Name, err)
		}
	}
	log.Println("Initial brands created successfully")
}
