// Package config holds the application configuration, loaded from environment
// variables (optionally via a .env file) and exposed through a global instance.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// Global configuration instance
	globalConfig *Config
	configMutex  sync.RWMutex
)

// Get returns the global configuration instance
// If the configuration has not been initialized, it will return an error
func Get() (*Config, error) {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	return globalConfig, nil
}

// Set sets the global configuration instance
func Set(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = cfg
}

// Config represents the complete application configuration
type Config struct {
	PageSpeed PageSpeedConfig
	History   HistoryConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	configDir string // Internal: Directory where config was loaded from
}

// PageSpeedConfig holds configuration for the PageSpeed Insights client
type PageSpeedConfig struct {
	// Authentication and connection
	APIKey  string // Optional API key for higher rate limits
	BaseURL string // PageSpeed Insights API base URL

	// Request settings
	Timeout             time.Duration // Request timeout (one blocking call per audit)
	MaxIdleConns        int           // Maximum number of idle connections
	MaxIdleConnsPerHost int           // Maximum number of idle connections per host
	IdleConnTimeout     time.Duration // How long to keep idle connections alive

	// Rate limiting
	RequestsPerMinute int // Client-side request budget (0 disables limiting)
	BurstLimit        int // Burst allowance for the limiter
}

// HistoryConfig represents audit history configuration
type HistoryConfig struct {
	Enabled bool // Whether audits are recorded in the local history database
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Path            string        // Path to the SQLite database file
	JournalMode     string        // Journal mode (WAL recommended)
	SynchronousMode string        // Synchronous mode
	BusyTimeout     int           // Busy timeout in milliseconds
	CacheSize       int           // Cache size in KiB
	ForeignKeys     bool          // Whether to enforce foreign key constraints
	ConnMaxLife     time.Duration // Maximum connection lifetime
	QueryTimeout    time.Duration // Query timeout
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// New returns a new empty Config
func New() *Config {
	return &Config{
		PageSpeed: PageSpeedConfig{},
		History:   HistoryConfig{},
		Database:  DatabaseConfig{},
		Logging:   LoggingConfig{},
	}
}

// ConfigDir returns the directory the configuration was loaded from
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validatePageSpeed(); err != nil {
		return fmt.Errorf("pagespeed config: %w", err)
	}

	if err := c.validateDatabase(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validatePageSpeed() error {
	if c.PageSpeed.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	if c.PageSpeed.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.PageSpeed.MaxIdleConns <= 0 {
		return fmt.Errorf("max_idle_conns must be positive")
	}

	if c.PageSpeed.MaxIdleConnsPerHost <= 0 {
		return fmt.Errorf("max_idle_conns_per_host must be positive")
	}

	if c.PageSpeed.IdleConnTimeout <= 0 {
		return fmt.Errorf("idle_conn_timeout must be positive")
	}

	if c.PageSpeed.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute cannot be negative")
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	// Create the directory if it doesn't exist
	dir := filepath.Dir(c.Database.Path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for database: %w", err)
		}
	}

	if c.Database.BusyTimeout <= 0 {
		return fmt.Errorf("busy timeout must be positive")
	}

	if c.Database.ConnMaxLife <= 0 {
		return fmt.Errorf("connection max life must be positive")
	}

	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("query timeout must be positive")
	}

	return nil
}

func (c *Config) validateLogging() error {
	// Validate logging level
	level := strings.ToLower(c.Logging.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" && level != "none" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	// Validate format
	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
