package cli

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabapcia/validatorwatch/internal/activityscan"

	"github.com/urfave/cli/v3"
)

// scanCommand returns a CLI command that scans the blocks after a cursor
// once and prints the report as JSON.
//
// Usage example:
//
//	validatorwatch scan --start-block 1200000 --max-window 500
func scanCommand(scanner activityscan.Service) *cli.Command {
	return &cli.Command{
		Name:        "scan",
		Description: "Scan the blocks after --start-block and print the activity report.",
		Usage:       "Runs a single scan. Continue with --start-block set to the report's toBlock while hasMore is true. Ctrl+C prints the partial report.",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "start-block",
				Usage:    "Last block already processed; the scan starts at the next one",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Blocks fetched concurrently per batch (0 uses the configured default)",
			},
			&cli.IntFlag{
				Name:  "max-window",
				Usage: "Maximum number of blocks covered by the report (0 uses the configured default)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Time budget of the scan; a partial report is printed when it runs out",
				Value: time.Minute,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctx, cancel := context.WithTimeout(ctx, c.Duration("timeout"))
			defer cancel()

			report, err := scanner.Scan(ctx, activityscan.Request{
				StartBlock: c.Int64("start-block"),
				BatchSize:  c.Int("batch-size"),
				MaxWindow:  c.Int("max-window"),
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}
