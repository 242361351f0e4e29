package routes

import (
	"hatch-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers all routes related to auth and users
func RegisterUserRoutes(rg *gin.RouterGroup, userHandler handlers.UserHandlerInterface, authMiddleware gin.HandlerFunc) {
	// --- Authentication Routes ---
	auth := rg.Group("/auth")
	{
		auth.POST("/register", userHandler.Register) // Creates org + first user
		auth.POST("/login", userHandler.Login)
		auth.POST("/refresh", userHandler.Refresh)
		auth.POST("/logout", userHandler.Logout)
	}

	// --- User Routes ---
	users := rg.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/me", userHandler.GetMe)
	}
}
