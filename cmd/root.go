package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// RootApp builds the inkwell command line application.
func RootApp() *cli.App {
	return &cli.App{
		Name:  "inkwell",
		Usage: "A small blog with a JSON API and an RSS feed",
		Description: `Inkwell serves blog posts over a JSON API under /api/v1 and
		publishes the newest posts as RSS.

		Configuration is read from config/config.json, then environment
		variables, then command line flags, e.g.:

		APP_PORT=9000 LATENCY_MS=0 inkwell serve
		inkwell serve --port 9000 --latency 0
		`,
		Commands: []*cli.Command{
			serveCmd(),
			seedCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

// Execute runs the application with the process arguments and exits non-zero on failure.
func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
