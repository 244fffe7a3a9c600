// Command replenishctl is the operator tool for schema migrations, supplier
// rescoring, low-stock reports, staff roles, notification retention and
// identity tokens for testing. Maintenance commands are meant to be run by
// an external scheduler, not as in-process goroutines.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/stockroom/replenish-backend/internal/app"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "replenishctl: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "replenishctl",
		Usage:   "operate the stock replenishment backend",
		Version: app.BuildVersion(),
		Commands: []*cli.Command{
			migrateCommand(),
			suppliersCommand(),
			stockCommand(),
			tokenCommand(),
			staffCommand(),
			notificationsCommand(),
		},
	}
}
