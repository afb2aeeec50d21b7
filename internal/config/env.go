package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
// - isInitializing: Whether this is being called during explicit initialization (e.g., from init command)
func LoadFromEnv(configDir string, configFilePath string, isInitializing bool) (*Config, error) {
	// Load empty configuration
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".webaudit")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	// Default database path is in the config directory
	defaultDBPath := filepath.Join(configDir, "webaudit.db")

	// Default log path is in the config directory
	defaultLogPath := filepath.Join(configDir, "webaudit.log")

	// Use provided config file path or default
	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// Check if ENV_FILE_PATH is set to load from a custom .env file
	envFilePath := getEnvString("ENV_FILE_PATH", "")
	if envFilePath != "" {
		// User specified a custom env file path
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		// Try to load from config directory first
		if err := godotenv.Load(configFilePath); err != nil {
			// Then try current directory as fallback
			_ = godotenv.Load() // Ignore errors if file doesn't exist
		}
	}

	// PageSpeed Insights configuration
	cfg.PageSpeed = PageSpeedConfig{
		APIKey:              getEnvString("WEBAUDIT_PAGESPEED_API_KEY", ""),
		BaseURL:             getEnvString("WEBAUDIT_PAGESPEED_BASE_URL", "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"),
		Timeout:             getEnvDuration("WEBAUDIT_PAGESPEED_TIMEOUT", 60*time.Second),
		MaxIdleConns:        getEnvInt("WEBAUDIT_PAGESPEED_MAX_IDLE_CONNS", 10),
		MaxIdleConnsPerHost: getEnvInt("WEBAUDIT_PAGESPEED_MAX_IDLE_CONNS_PER_HOST", 10),
		IdleConnTimeout:     getEnvDuration("WEBAUDIT_PAGESPEED_IDLE_CONN_TIMEOUT", 90*time.Second),
		RequestsPerMinute:   getEnvInt("WEBAUDIT_PAGESPEED_REQUESTS_PER_MINUTE", 0),
		BurstLimit:          getEnvInt("WEBAUDIT_PAGESPEED_BURST_LIMIT", 1),
	}

	// History configuration
	cfg.History = HistoryConfig{
		Enabled: getEnvBool("WEBAUDIT_HISTORY_ENABLED", true),
	}

	// Database configuration
	cfg.Database = DatabaseConfig{
		Path:            getEnvString("WEBAUDIT_DB_PATH", defaultDBPath),
		BusyTimeout:     getEnvInt("WEBAUDIT_DB_BUSY_TIMEOUT", 5000),
		JournalMode:     getEnvString("WEBAUDIT_DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString("WEBAUDIT_DB_SYNCHRONOUS_MODE", "NORMAL"),
		CacheSize:       getEnvInt("WEBAUDIT_DB_CACHE_SIZE", -2000), // ~2MB
		ForeignKeys:     getEnvBool("WEBAUDIT_DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration("WEBAUDIT_DB_CONN_MAX_LIFE", 5*time.Minute),
		QueryTimeout:    getEnvDuration("WEBAUDIT_DB_QUERY_TIMEOUT", 30*time.Second),
	}

	// Logging configuration
	cfg.Logging = LoggingConfig{
		Level:      getEnvString("WEBAUDIT_LOG_LEVEL", "info"),
		Format:     getEnvString("WEBAUDIT_LOG_FORMAT", "text"),
		Output:     getEnvString("WEBAUDIT_LOG_OUTPUT", defaultLogPath),
		AddSource:  getEnvBool("WEBAUDIT_LOG_ADD_SOURCE", false),
		TimeFormat: getEnvString("WEBAUDIT_LOG_TIME_FORMAT", time.RFC3339),
	}

	// Validate the configuration
	return cfg, cfg.Validate()
}
