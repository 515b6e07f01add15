package main

import (
	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/handlers"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/internal/utils"
	"github.com/basecode360/traintrack/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	openAICfg      *config.OpenAIConfig
	insightService *services.InsightService
	digestService  *services.DigestService
	taskQueue      services.TaskQueue
	worker         *services.Worker
	authHandler    *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed default data
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB())

	// Start retry scheduler for failed insight reports
	services.StartRetryScheduler(models.GetDB(), &cfg.OpenAI)

	// Initialize and start the weekly digest scheduler
	digestService := services.InitDigestService(models.GetDB(), &cfg.OpenAI)
	digestService.StartScheduler()

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	insightService := services.NewInsightService(models.GetDB(), &cfg.OpenAI)
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(insightService.ProcessTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(insightService.ProcessTask)
			worker.Start()
		}
	}

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		openAICfg:      &cfg.OpenAI,
		insightService: insightService,
		digestService:  digestService,
		taskQueue:      taskQueue,
		worker:         worker,
		authHandler:    authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.digestService.StopScheduler()
	services.StopLogCleanupScheduler()
	services.StopRetryScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
