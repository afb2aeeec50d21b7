package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/webaudit/internal/app"
	"github.com/tildaslashalef/webaudit/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
	Author     = "unknown"
	Email      = "unknown"
)

func main() {
	cliApp := &cli.App{
		Name:      "webaudit",
		Usage:     "Website performance audit tool",
		ArgsUsage: "<url>",
		Description: "webaudit fetches a PageSpeed Insights report for a URL and prints\n" +
			"category scores, key metrics and a best-effort tech stack guess.\n\n" +
			"When run without subcommands, webaudit audits the URL given as the first\n" +
			"argument (default action). Additional subcommands browse the audit history.",
		Version: Version,
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Authors: []*cli.Author{
			{
				Name:  Author,
				Email: Email,
			},
		},
		Flags: commands.AuditFlags(),
		Before: func(c *cli.Context) error {
			// The init command sets up its own configuration and database
			if c.Args().First() == "init" {
				return nil
			}

			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if app, ok := c.App.Metadata["app"].(*app.App); ok {
				return app.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.HistoryCommand(),
			commands.InitCommand(),
			commands.MigrateCommand(),
		},
		Action: commands.AuditAction,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
