package main

import (
	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/handlers"
	"github.com/basecode360/traintrack/internal/middleware"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/basecode360/traintrack/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public auth endpoints
	authLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)
	r.GET("/metrics", handlers.Metrics)

	db := models.GetDB()

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard (scoped to the actor's visible units)
			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)

			// Units
			unitHandler := handlers.NewUnitHandler(db)
			protected.GET("/units", unitHandler.List)
			protected.GET("/units/tree", unitHandler.Tree)
			protected.GET("/units/:id", unitHandler.GetByID)
			protected.GET("/units/:id/children", unitHandler.Children)
			protected.POST("/units", unitHandler.Create)
			protected.PUT("/units/:id", unitHandler.Update)
			protected.PUT("/units/:id/parent", unitHandler.Reparent)
			protected.DELETE("/units/:id", unitHandler.Delete)
			protected.POST("/units/:id/referral/rotate", unitHandler.RotateReferral)
			protected.POST("/units/join", unitHandler.Join)

			// Unit leadership and rollups
			rosterHandler := handlers.NewRosterHandler(db)
			aarHandler := handlers.NewAARHandler(db)
			protected.GET("/units/:id/leader", rosterHandler.UnitLeader)
			protected.GET("/units/:id/aar-rollup", aarHandler.Rollup)

			// Personnel
			protected.GET("/personnel", rosterHandler.List)
			protected.GET("/personnel/:id", rosterHandler.GetByID)
			protected.PUT("/personnel/:id", rosterHandler.UpdateProfile)

			// Assignments
			assignmentHandler := handlers.NewAssignmentHandler(db)
			protected.GET("/personnel/:id/assignments", assignmentHandler.ListForUser)
			protected.POST("/personnel/:id/assignments", assignmentHandler.Apply)
			protected.POST("/personnel/:id/assignments/:assignmentId/promote", assignmentHandler.Promote)
			protected.DELETE("/personnel/:id/assignments/:assignmentId", assignmentHandler.Remove)

			// Training events
			eventHandler := handlers.NewEventHandler(db)
			protected.GET("/events", eventHandler.List)
			protected.GET("/events/steps", eventHandler.Steps)
			protected.GET("/events/:id", eventHandler.GetByID)
			protected.POST("/events", eventHandler.Create)
			protected.PUT("/events/:id", eventHandler.Update)
			protected.DELETE("/events/:id", eventHandler.Delete)

			// AARs
			protected.GET("/aars", aarHandler.List)
			protected.GET("/aars/:id", aarHandler.GetByID)
			protected.POST("/aars", aarHandler.Create)
			protected.DELETE("/aars/:id", aarHandler.Delete)

			// Insight reports
			insightHandler := handlers.NewInsightHandler(db, cfg)
			protected.GET("/insights", insightHandler.List)
			protected.GET("/insights/:id", insightHandler.GetByID)
			protected.POST("/insights", insightHandler.Generate)
			protected.POST("/insights/:id/retry", insightHandler.Retry)

			// Prompts (read for all users)
			promptHandler := handlers.NewPromptHandler(db)
			protected.GET("/prompts", promptHandler.List)
			protected.GET("/prompts/default", promptHandler.GetDefault)
			protected.GET("/prompts/active", promptHandler.GetAllActive)
			protected.GET("/prompts/:id", promptHandler.GetByID)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Users
			userHandler := handlers.NewUserHandler(db)
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			// LLM Configs
			llmConfigHandler := handlers.NewLLMConfigHandler(db)
			admin.GET("/llm-configs", llmConfigHandler.List)
			admin.GET("/llm-configs/active", llmConfigHandler.GetActive)
			admin.GET("/llm-configs/:id", llmConfigHandler.GetByID)
			admin.POST("/llm-configs", llmConfigHandler.Create)
			admin.PUT("/llm-configs/:id", llmConfigHandler.Update)
			admin.DELETE("/llm-configs/:id", llmConfigHandler.Delete)

			// Prompts (write operations)
			promptHandler := handlers.NewPromptHandler(db)
			admin.POST("/prompts", promptHandler.Create)
			admin.PUT("/prompts/:id", promptHandler.Update)
			admin.DELETE("/prompts/:id", promptHandler.Delete)
			admin.POST("/prompts/:id/set-default", promptHandler.SetDefault)

			// AI usage stats
			aiUsageHandler := handlers.NewAIUsageHandler(db)
			admin.GET("/ai-usage/stats", aiUsageHandler.GetStats)
			admin.GET("/ai-usage/trend", aiUsageHandler.GetDailyTrend)
			admin.GET("/ai-usage/providers", aiUsageHandler.GetProviderBreakdown)

			// System Logs
			systemLogHandler := handlers.NewSystemLogHandler(db)
			admin.GET("/system-logs", systemLogHandler.List)
			admin.GET("/system-logs/modules", systemLogHandler.GetModules)
			admin.GET("/system-logs/retention", systemLogHandler.GetRetention)
			admin.PUT("/system-logs/retention", systemLogHandler.SetRetention)

			// System Config
			systemConfigHandler := handlers.NewSystemConfigHandler(db)
			admin.GET("/system-config/ldap", systemConfigHandler.GetLDAPConfig)
			admin.PUT("/system-config/ldap", systemConfigHandler.UpdateLDAPConfig)
			admin.GET("/system-config/insight-digest", systemConfigHandler.GetInsightDigestConfig)
			admin.PUT("/system-config/insight-digest", systemConfigHandler.UpdateInsightDigestConfig)
		}
	}
}
