package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/app"
	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/session"
)

// runApp opens dependencies and launches the TUI. A non-nil start skips
// the splash and opens a session right away.
func runApp(cmd *cobra.Command, start func(defaults session.Options, b *bank.Bank) (session.Options, error)) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	svc, err := d.services(cmd.Context())
	if err != nil {
		return err
	}

	opts := app.Options{Splash: true}
	if start != nil {
		so, err := start(svc.Defaults, d.bank)
		if err != nil {
			return err
		}
		if so.Count <= 0 {
			return fmt.Errorf("count must be positive, got %d", so.Count)
		}
		opts = app.Options{Start: &so}
	}

	d.logger.Info("starting tui", "bank_version", d.bank.Version, "questions", d.bank.Len())
	return app.Run(svc, opts)
}
