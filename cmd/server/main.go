package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"petlink/internal/config"
	"petlink/internal/db"
	"petlink/internal/middleware"
	"petlink/internal/router"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Database
	db.Init(conf.DatabaseURL)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	store := cookie.NewStore([]byte(conf.SessionSecret))
	r.Use(sessions.Sessions("petlink_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r, conf.AllowOrigin)

	log.Printf("PetLink server starting on :%s", conf.Port)
	if err := r.Run(":" + conf.Port); err != nil {
		log.Fatal(err)
	}
}
