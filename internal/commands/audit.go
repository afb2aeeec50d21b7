// Package commands implements the CLI commands
package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/webaudit/internal/app"
	"github.com/tildaslashalef/webaudit/internal/audit"
	"github.com/tildaslashalef/webaudit/internal/loggy"
	"github.com/tildaslashalef/webaudit/internal/pagespeed"
	"github.com/tildaslashalef/webaudit/internal/utils"
)

// AuditFlags returns the flags for the default audit action
func AuditFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Aliases: []string{"k"},
			Usage:   "PageSpeed Insights API key (falls back to WEBAUDIT_PAGESPEED_API_KEY)",
		},
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "Analysis strategy: mobile or desktop",
			Value:   "mobile",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write results to a JSON file at the given path",
		},
		&cli.BoolFlag{
			Name:  "both",
			Usage: "Audit with both strategies, mobile first then desktop",
		},
		&cli.BoolFlag{
			Name:  "no-save",
			Usage: "Skip recording this run in the audit history",
		},
	}
}

// AuditAction is the default action: audit the URL given as the first
// argument
func AuditAction(c *cli.Context) error {
	if c.NArg() < 1 {
		// No URL given; show help instead of erroring out
		return cli.ShowAppHelp(c)
	}

	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	targetURL := utils.NormalizeURL(c.Args().First())

	if key := c.String("api-key"); key != "" {
		// The client snapshots its config, so rebuild it with the override
		application.Config.PageSpeed.APIKey = key
		client := pagespeed.NewClient(application.Config.PageSpeed)
		application.Audit = audit.NewService(client, loggy.GetGlobalLogger())
	}

	if c.Bool("both") {
		return runBoth(c, application, targetURL)
	}

	strategy, err := pagespeed.ParseStrategy(c.String("strategy"))
	if err != nil {
		return err
	}

	record, err := application.Audit.Run(c.Context, targetURL, strategy)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Audit failed: %s", err))
		return err
	}

	audit.PrintReport(record)
	recordHistory(c, application, record)

	if output := c.String("output"); output != "" {
		if err := audit.Save(output, record); err != nil {
			utils.PrintError(fmt.Sprintf("Failed to save results: %s", err))
			return err
		}
		utils.PrintSuccess(fmt.Sprintf("Results saved to %s", output))
	}

	return nil
}

// runBoth audits with mobile then desktop and combines the results
func runBoth(c *cli.Context, application *app.App, targetURL string) error {
	combined := &audit.CombinedResult{}

	for _, strategy := range []pagespeed.Strategy{pagespeed.StrategyMobile, pagespeed.StrategyDesktop} {
		record, err := application.Audit.Run(c.Context, targetURL, strategy)
		if err != nil {
			utils.PrintError(fmt.Sprintf("Audit failed: %s", err))
			return err
		}

		if strategy == pagespeed.StrategyMobile {
			combined.Mobile = record
		} else {
			combined.Desktop = record
		}

		recordHistory(c, application, record)
	}

	audit.PrintCombinedReport(combined)

	if output := c.String("output"); output != "" {
		if err := audit.Save(output, combined); err != nil {
			utils.PrintError(fmt.Sprintf("Failed to save results: %s", err))
			return err
		}
		utils.PrintSuccess(fmt.Sprintf("Results saved to %s", output))
	}

	return nil
}

// recordHistory saves the run to the history store. Persistence failures are
// logged and never fail the audit itself.
func recordHistory(c *cli.Context, application *app.App, record *audit.ResultRecord) {
	if application.History == nil || c.Bool("no-save") {
		return
	}

	stored, err := application.History.Record(c.Context, record)
	if err != nil {
		loggy.Warn("Failed to record audit in history", "url", record.URL, "error", err)
		return
	}

	loggy.Debug("Audit recorded in history", "id", stored.ID, "run_name", stored.RunName)
}
