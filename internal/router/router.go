package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/savora-ai/savora/backend/internal/api"
	"github.com/savora-ai/savora/backend/internal/middleware"
)

// Handlers collects everything the router wires up.
type Handlers struct {
	Health      *api.HealthHandler
	Auth        *api.AuthHandler
	Wizard      *api.WizardHandler
	Generate    *api.GenerateHandler
	Chat        *api.ChatHandler
	Collections *api.CollectionHandler
	Kitchen     *api.KitchenHandler
	Diagnostics *api.DiagnosticsHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, validator middleware.TokenValidator) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", h.Health.HealthCheck)

	v1 := router.Group("/api/v1")

	// Public routes
	h.Auth.RegisterRoutes(v1)
	h.Wizard.RegisterRoutes(v1)
	h.Chat.RegisterRoutes(v1)
	h.Kitchen.RegisterRoutes(v1)

	// Generation works anonymously; history is only recorded for a
	// signed-in user.
	generate := v1.Group("")
	generate.Use(middleware.OptionalAuthMiddleware(validator))
	h.Generate.RegisterRoutes(generate)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	h.Collections.RegisterRoutes(protected)
	h.Diagnostics.RegisterRoutes(protected)

	return router
}
