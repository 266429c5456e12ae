package routes

import (
	"github.com/gin-gonic/gin"

	"fitcoach_backend/internal/auth"
	"fitcoach_backend/internal/handlers"
	"fitcoach_backend/internal/middleware"
	"fitcoach_backend/internal/models"
	"fitcoach_backend/internal/repositories"
)

// SetupRoutes registers the full API surface on the router.
func SetupRoutes(
	router *gin.Engine,
	h *handlers.AppHandlers,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
) {
	authRequired := middleware.AuthMiddleware(tokens, userRepo)
	staffOnly := middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleTrainer)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)

	router.GET("/", h.HealthHandler.Root)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthHandler.Check)
		api.GET("/health/database", h.HealthHandler.Database)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.AuthHandler.Register)
			authGroup.POST("/login", h.AuthHandler.Login)
			authGroup.POST("/refresh-token", h.AuthHandler.RefreshToken)
			authGroup.POST("/logout", authRequired, h.AuthHandler.Logout)
			authGroup.GET("/me", authRequired, h.AuthHandler.Me)
		}

		users := api.Group("/users", authRequired)
		{
			users.GET("", staffOnly, h.UserHandler.List)
			users.GET("/me", h.UserHandler.GetMe)
			users.PUT("/me", h.UserHandler.UpdateMe)
			users.GET("/:id", staffOnly, h.UserHandler.Get)
			users.PUT("/:id", staffOnly, h.UserHandler.Update)
			users.DELETE("/:id", adminOnly, h.UserHandler.Delete)
		}

		profiles := api.Group("/profiles", authRequired)
		{
			profiles.GET("/me", h.ProfileHandler.GetOwn)
			profiles.POST("/me", h.ProfileHandler.CreateOwn)
			profiles.PUT("/me", h.ProfileHandler.UpdateOwn)
			profiles.GET("/:userId", staffOnly, h.ProfileHandler.Get)
			profiles.PUT("/:userId", staffOnly, h.ProfileHandler.Update)
		}
	}
}
