package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-computed-properties/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/healthz", handler.HealthCheck)

	// Admin routes, every one of them authenticated
	admin := router.Group("/api/v1/admin", middleware.Auth(authCfg))
	{
		workspaces := admin.Group("/workspaces/:id")
		workspaces.POST("/compute-properties/start", handler.StartComputeProperties)
		workspaces.POST("/compute-properties/stop", handler.StopComputeProperties)
		workspaces.POST("/compute-properties/reset", handler.ResetComputeProperties)
		workspaces.POST("/compute-properties/terminate", handler.TerminateComputeProperties)
		workspaces.POST("/compute-properties/signal", handler.SignalComputeProperties)
		workspaces.POST("/compute-state", handler.ComputeState)
		workspaces.POST("/reset-data", handler.ResetWorkspaceData)
		workspaces.GET("/periods", handler.ListPeriods)

		admin.POST("/global/compute-properties/start", handler.StartGlobal)
		admin.POST("/global/compute-properties/stop", handler.StopGlobal)

		admin.GET("/due-workspaces", handler.FindDueWorkspaces)
	}
}
