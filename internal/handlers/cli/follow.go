package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/gabapcia/validatorwatch/internal/activityfollow"

	"github.com/urfave/cli/v3"
)

// followCommand returns a CLI command that scans from the stored checkpoint
// on a schedule and publishes every report.
//
// Usage example:
//
//	validatorwatch follow
//	validatorwatch follow --once
func followCommand(follower activityfollow.Service) *cli.Command {
	return &cli.Command{
		Name:        "follow",
		Description: "Scan from the stored checkpoint up to the chain head on a schedule, publishing each report.",
		Usage:       "Runs until Ctrl+C or a termination signal. With --once, catches up a single time and exits.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Catch up to the chain head once and exit",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if c.Bool("once") {
				err := follower.Follow(ctx)
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					// Interrupted; the checkpoint holds the last published report.
					return nil
				}
				return err
			}

			if err := follower.Start(ctx); err != nil {
				return err
			}
			defer follower.Close()

			<-ctx.Done()
			return nil
		},
	}
}
