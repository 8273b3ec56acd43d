package api

import (
	"github.com/EidolonLabs/persona-launchpad/api/handlers"
	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes all API endpoints
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/agents", handlers.RegisterAgent)
		api.GET("/agents/:agentID", handlers.GetAgent)
		api.GET("/agents/:agentID/beliefs/:key", handlers.GetBelief)
		api.POST("/onboarding/:agentID/start", handlers.StartOnboarding)
		api.POST("/onboarding/:agentID/cancel", handlers.CancelOnboarding)
		api.GET("/onboarding/:agentID", handlers.GetOnboardingStatus)
		api.GET("/onboarding/:agentID/metrics", handlers.GetOnboardingMetrics)
		api.GET("/models", handlers.ListModels)
	}
	router.GET("/ws/:agentID", handlers.HandleWebSocket)
}
