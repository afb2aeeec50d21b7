package commands

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/webaudit/internal/app"
	"github.com/tildaslashalef/webaudit/internal/audit"
	"github.com/tildaslashalef/webaudit/internal/history"
	"github.com/tildaslashalef/webaudit/internal/utils"
)

// HistoryCommand returns the CLI command for browsing stored audits
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"h"},
		Usage:   "Browse past audit runs",
		Subcommands: []*cli.Command{
			historyListCommand(),
			historyShowCommand(),
			historyDeleteCommand(),
		},
	}
}

func historyListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored audit runs, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "Only show runs for this URL",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Runs per page",
				Value: 10,
			},
		},
		Action: func(c *cli.Context) error {
			application, err := app.FromContext(c)
			if err != nil {
				return err
			}
			if application.History == nil {
				return errors.New("history is disabled, enable it with WEBAUDIT_HISTORY_ENABLED=true")
			}

			filterURL := c.String("url")
			if filterURL != "" {
				filterURL = utils.NormalizeURL(filterURL)
			}

			audits, err := application.History.List(c.Context, filterURL, c.Int("page"), c.Int("limit"))
			if err != nil {
				return fmt.Errorf("listing audits: %w", err)
			}

			if len(audits) == 0 {
				utils.PrintInfo("No stored audits found")
				return nil
			}

			rows := make([][]string, 0, len(audits))
			for _, a := range audits {
				rows = append(rows, []string{
					a.ID,
					a.RunName,
					utils.TruncateText(a.URL, 40),
					a.Strategy,
					fmt.Sprintf("%.0f %s", a.Performance, audit.ScoreIndicator(a.Performance).Symbol()),
					a.CreatedAt.Format("2006-01-02 15:04"),
				})
			}

			utils.PrintTable(
				[]string{"ID", "Run", "URL", "Strategy", "Perf", "Date"},
				rows,
				utils.TableOptions{Title: "Audit History"},
			)

			return nil
		},
	}
}

func historyShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the full report for a stored audit run",
		ArgsUsage: "<audit-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return errors.New("audit id is required")
			}

			application, err := app.FromContext(c)
			if err != nil {
				return err
			}
			if application.History == nil {
				return errors.New("history is disabled, enable it with WEBAUDIT_HISTORY_ENABLED=true")
			}

			stored, err := application.History.Get(c.Context, c.Args().First())
			if err != nil {
				if errors.Is(err, history.ErrAuditNotFound) {
					utils.PrintError(fmt.Sprintf("No audit found with id %s", c.Args().First()))
					return err
				}
				return fmt.Errorf("loading audit: %w", err)
			}

			record, err := stored.ToResultRecord()
			if err != nil {
				return fmt.Errorf("decoding stored audit: %w", err)
			}

			utils.PrintKeyValue("Run", stored.RunName)
			audit.PrintReport(record)
			return nil
		},
	}
}

func historyDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a stored audit run",
		ArgsUsage: "<audit-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return errors.New("audit id is required")
			}

			application, err := app.FromContext(c)
			if err != nil {
				return err
			}
			if application.History == nil {
				return errors.New("history is disabled, enable it with WEBAUDIT_HISTORY_ENABLED=true")
			}

			id := c.Args().First()
			if err := application.History.Delete(c.Context, id); err != nil {
				if errors.Is(err, history.ErrAuditNotFound) {
					utils.PrintError(fmt.Sprintf("No audit found with id %s", id))
					return err
				}
				return fmt.Errorf("deleting audit: %w", err)
			}

			utils.PrintSuccess(fmt.Sprintf("Deleted audit %s", id))
			return nil
		},
	}
}
