package routes

import (
	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/handler"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
) {
	router.GET("/health", healthHandler.Health)

	// User routes
	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.GET("/:userId", userHandler.GetUser)
		userRoutes.PATCH("/:userId", userHandler.UpdateUser)
		userRoutes.DELETE("/:userId", userHandler.DeleteUser)
		userRoutes.POST("/:userId/deactivate", userHandler.DeactivateUser)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
