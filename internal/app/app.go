// Package app provides the application initialization and lifecycle management
package app

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/webaudit/internal/audit"
	"github.com/tildaslashalef/webaudit/internal/config"
	"github.com/tildaslashalef/webaudit/internal/database"
	"github.com/tildaslashalef/webaudit/internal/history"
	"github.com/tildaslashalef/webaudit/internal/loggy"
	"github.com/tildaslashalef/webaudit/internal/pagespeed"
)

// App represents the application instance with its dependencies
type App struct {
	Config  *config.Config
	Audit   *audit.Service
	History *history.Service
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"log_level", cfg.Logging.Level,
	)

	var db *sql.DB
	if cfg.History.Enabled {
		if err := database.InitDB(cfg); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		if _, err := database.RunMigrations(); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		db, err = database.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database connection: %w", err)
		}
	}

	app, err := initServices(cfg, db)
	if err != nil {
		return nil, err
	}

	loggy.Info("Application initialized successfully")
	return app, nil
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	// Load configuration with default paths, not in initialization mode
	cfg, err := config.LoadFromEnv("", "", false)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// initServices initializes all application services. db is nil when history
// is disabled; the history service stays nil in that case.
func initServices(cfg *config.Config, db *sql.DB) (*App, error) {
	logger := loggy.GetGlobalLogger()

	client := pagespeed.NewClient(cfg.PageSpeed)
	auditService := audit.NewService(client, logger)

	var historyService *history.Service
	if db != nil {
		repo := history.NewSQLRepository(db, logger)
		historyService = history.NewService(repo, logger)
	}

	return &App{
		Config:  cfg,
		Audit:   auditService,
		History: historyService,
	}, nil
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if err := database.CloseDB(); err != nil {
		loggy.Error("Error closing database connection", "error", err)
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
