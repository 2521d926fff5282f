package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/ainft-labs/ainft-sync/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	apps := v1.Group("/apps/:app_id")
	{
		// Service bindings and credit (mutations require authentication)
		apps.POST("/services", middleware.Auth(authCfg), handler.ConfigureService)
		apps.GET("/services/:service/credit", handler.GetCredit)
		apps.POST("/services/:service/credit/deposits", middleware.Auth(authCfg), handler.DepositCredit)

		// Assistants
		apps.GET("/assistants", handler.ListAssistants)
		assistant := apps.Group("/tokens/:token_id/services/:service/assistant")
		{
			assistant.GET("", handler.GetAssistant)
			assistant.POST("", middleware.Auth(authCfg), handler.CreateAssistant)
			assistant.PUT("", middleware.Auth(authCfg), handler.UpdateAssistant)
			assistant.DELETE("", middleware.Auth(authCfg), handler.DeleteAssistant)
		}

		// Threads and messages, scoped to one user's history
		threads := apps.Group("/tokens/:token_id/services/:service/users/:address/threads")
		{
			threads.GET("", handler.ListThreads)
			threads.POST("", middleware.Auth(authCfg), handler.CreateThread)
			threads.GET("/:thread_id", handler.GetThread)
			threads.PUT("/:thread_id", middleware.Auth(authCfg), handler.UpdateThread)
			threads.DELETE("/:thread_id", middleware.Auth(authCfg), handler.DeleteThread)

			threads.GET("/:thread_id/messages", handler.ListMessages)
			threads.POST("/:thread_id/messages", middleware.Auth(authCfg), handler.CreateMessage)
			threads.GET("/:thread_id/messages/:message_id", handler.GetMessage)
			threads.PUT("/:thread_id/messages/:message_id", middleware.Auth(authCfg), handler.UpdateMessage)
		}

		// Reconciliation findings (requires API key authentication only)
		apps.GET("/findings", middleware.Auth(authCfg), handler.ListFindings)
	}
}
