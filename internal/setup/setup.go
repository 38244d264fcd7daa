package setup

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/axoguild/axobot/internal/database"
	"github.com/axoguild/axobot/internal/redis"
	"github.com/axoguild/axobot/internal/setup/config"
)

// App bundles all core dependencies needed by the bot. Each field represents
// a subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config  // Application configuration
	Logger       *zap.Logger     // Main application logger
	DBLogger     *zap.Logger     // Database-specific logger
	DB           database.Client // Database connection pool
	RedisManager *redis.Manager  // Redis connection manager
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, logDir string, autoMigrate bool) (*App, error) {
	// Load app configuration
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logger, dbLogger, err := GetLoggers(logDir, cfg.Debug.LogLevel, cfg.Debug.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded configuration", zap.String("configDir", configDir))

	// Redis manager provides connection pools for short-lived bot state
	redisManager := redis.NewManager(&cfg.Redis, logger)

	// Initialize database connection and run pending migrations
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dbLogger.Named("database"), autoMigrate)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
	}, nil
}

// Cleanup performs cleanup tasks in reverse initialization order.
func (a *App) Cleanup() {
	a.RedisManager.Close()

	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	_ = a.Logger.Sync()
	_ = a.DBLogger.Sync()
}
