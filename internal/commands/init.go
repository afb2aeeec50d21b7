package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/webaudit/internal/config"
	"github.com/tildaslashalef/webaudit/internal/database"
	"github.com/tildaslashalef/webaudit/internal/utils"
)

// InitCommand returns the CLI command for initializing webaudit
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize or update the webaudit environment",
		Description: "Sets up the webaudit environment including the configuration directory " +
			"and the history database. Use this command for first-time setup " +
			"or to update your database schema after upgrading to a new version.",
		Action: func(c *cli.Context) error {
			utils.PrintHeading("Initializing webaudit")

			homeDir, err := os.UserHomeDir()
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to get user home directory: %s", err))
				return fmt.Errorf("failed to get user home directory: %w", err)
			}

			configDir := filepath.Join(homeDir, ".webaudit")
			utils.PrintInfo("Configuration directory: " + color.YellowString("%s", configDir))

			if err := os.MkdirAll(configDir, 0755); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to create config directory: %s", err))
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			utils.PrintInfo("Extracting default configuration file")
			configFilePath := filepath.Join(configDir, ".env")

			// SetupConfigDirectory creates a dated backup if .env already exists
			if err := config.SetupConfigDirectory(configDir); err != nil {
				utils.PrintWarning(fmt.Sprintf("Failed to set up configuration files: %s", err))
				// Continue anyway as this is not critical
			}

			cfg, err := config.LoadFromEnv(configDir, configFilePath, true)
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to load configuration: %s", err))
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			utils.PrintInfo("Initializing database...")
			if err := database.InitDB(cfg); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to initialize database: %s", err))
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			utils.PrintInfo("Applying database migrations...")
			migrationsApplied, err := database.RunMigrations()
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			utils.PrintSuccess("webaudit initialized successfully!")

			if migrationsApplied > 0 {
				utils.PrintSuccess(fmt.Sprintf("Applied %d new migration(s)", migrationsApplied))
			} else {
				utils.PrintInfo("Database schema is already up-to-date")
			}

			utils.PrintInfo("Configuration file: " + color.YellowString("%s", configFilePath))
			utils.PrintInfo("Database location: " + color.YellowString("%s", cfg.Database.Path))
			utils.PrintInfo("Log file location: " + color.YellowString("%s", cfg.Logging.Output))
			fmt.Println("")
			utils.PrintInfo("You can now run " + color.CyanString("webaudit example.com") + " to audit a site.")

			return nil
		},
	}
}
