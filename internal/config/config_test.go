package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvString(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue string
		expected     string
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: "default",
			expected:     "default",
		},
		{
			name:         "env set, return env value",
			envValue:     "custom",
			defaultValue: "default",
			expected:     "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_STRING_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvString(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue time.Duration
		expected     time.Duration
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: 60 * time.Second,
			expected:     60 * time.Second,
		},
		{
			name:         "env set to 30s, return 30s",
			envValue:     "30s",
			defaultValue: 60 * time.Second,
			expected:     30 * time.Second,
		},
		{
			name:         "env set to invalid value, return default",
			envValue:     "not-a-duration",
			defaultValue: 60 * time.Second,
			expected:     60 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_DURATION_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			result := getEnvDuration(key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VALUE"

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true), "unset env should return default")

	os.Setenv(key, "false")
	defer os.Unsetenv(key)
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "not-a-bool")
	assert.True(t, getEnvBool(key, true), "invalid value should return default")
}

func TestLoadFromEnvDefaults(t *testing.T) {
	configDir := t.TempDir()

	cfg, err := LoadFromEnv(configDir, "", false)
	require.NoError(t, err)

	assert.Equal(t, "https://www.googleapis.com/pagespeedonline/v5/runPagespeed", cfg.PageSpeed.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.PageSpeed.Timeout)
	assert.Empty(t, cfg.PageSpeed.APIKey)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "WAL", cfg.Database.JournalMode)
	assert.Contains(t, cfg.Database.Path, "webaudit.db")
}

func TestLoadFromEnvOverrides(t *testing.T) {
	configDir := t.TempDir()

	os.Setenv("WEBAUDIT_PAGESPEED_API_KEY", "test-key-123")
	os.Setenv("WEBAUDIT_PAGESPEED_TIMEOUT", "30s")
	os.Setenv("WEBAUDIT_HISTORY_ENABLED", "false")
	defer func() {
		os.Unsetenv("WEBAUDIT_PAGESPEED_API_KEY")
		os.Unsetenv("WEBAUDIT_PAGESPEED_TIMEOUT")
		os.Unsetenv("WEBAUDIT_HISTORY_ENABLED")
	}()

	cfg, err := LoadFromEnv(configDir, "", false)
	require.NoError(t, err)

	assert.Equal(t, "test-key-123", cfg.PageSpeed.APIKey)
	assert.Equal(t, 30*time.Second, cfg.PageSpeed.Timeout)
	assert.False(t, cfg.History.Enabled)
}

func TestValidate(t *testing.T) {
	configDir := t.TempDir()

	cfg, err := LoadFromEnv(configDir, "", false)
	require.NoError(t, err)

	// A valid loaded config passes
	assert.NoError(t, cfg.Validate())

	// Empty base URL fails
	broken := *cfg
	broken.PageSpeed.BaseURL = ""
	assert.Error(t, broken.Validate())

	// Invalid log level fails
	broken = *cfg
	broken.Logging.Level = "loud"
	assert.Error(t, broken.Validate())
}
