package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/controllers"
)

// SetupRouter configures the router with all application routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Cookie session backs the anonymous cart token
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("vietshop_session", store))

	// Uploaded product and banner images
	router.Static("/uploads", "./uploads")

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Google OAuth lives outside the versioned API because the provider
	// calls the redirect URL directly
	router.GET("/auth/google", controllers.GoogleLogin)
	router.GET("/auth/google/callback", controllers.GoogleCallback)

	v1 := router.Group("/v1")
	RegisterUserRoutes(v1)
	RegisterAdminRoutes(v1)

	return router
}
