package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// serveCommand returns a CLI command that serves activity reports over HTTP
// until the process receives SIGINT or SIGTERM.
//
// Usage example:
//
//	validatorwatch serve
func serveCommand(server Server) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Serves GET /activity?startBlock=N and GET /health.",
		Usage:       "Starts the HTTP server. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx)
		},
	}
}
