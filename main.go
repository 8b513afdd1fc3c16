package main

import (
	"log"

	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/controllers"
	"github.com/minhtran-dev/vietshop/routes"
	"github.com/minhtran-dev/vietshop/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create sample admin account if none exists
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}

	utils.LogInfo("Server starting on port %s", port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
