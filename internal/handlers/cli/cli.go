package cli

import (
	"context"
	"os"

	"github.com/gabapcia/validatorwatch/internal/activityfollow"
	"github.com/gabapcia/validatorwatch/internal/activityscan"

	"github.com/urfave/cli/v3"
)

// Server is the HTTP surface started by the serve command.
type Server interface {
	Serve(ctx context.Context) error
}

// Run initializes and executes the validatorwatch CLI application.
//
// It registers all available commands:
//
//   - `serve`: Serves activity reports over HTTP.
//   - `scan`: Runs one scan and prints the report.
//   - `follow`: Keeps reports flowing from the stored checkpoint.
func Run(ctx context.Context, scanner activityscan.Service, follower activityfollow.Service, server Server) error {
	return newApp(scanner, follower, server).Run(ctx, os.Args)
}

func newApp(scanner activityscan.Service, follower activityfollow.Service, server Server) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "validatorwatch",
		Description:           "Reports block authorship and heartbeats of the current validator set of a Substrate chain.",
		Usage:                 "validatorwatch [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(server),
			scanCommand(scanner),
			followCommand(follower),
		},
	}
}
