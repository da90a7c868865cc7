// Package cmd provides Cobra CLI commands for veil.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli"
	"github.com/bnema/veil/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "veil",
		Short: "Blur or hide page regions with CSS selectors",
		Long: `Veil - obscure the parts of the web you would rather not see.

Give veil CSS selectors for page regions to blur (or cover) and, optionally,
exclusions inside them that must stay visible. Veil stores the rules and
compiles them into a stylesheet with forced priority.

The stylesheet is delivered through a sink:
  - a CSS file for user stylesheet loaders (output.format = "css")
  - a userscript that injects a <style> element (output.format = "userscript")
  - an HTTP endpoint served by 'veil serve'

Use 'veil watch' or 'veil serve' to keep the output current while rules
change, and 'veil edit' to tune blur intensity with a live preview.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			if app != nil {
				_ = app.Close()
			}
			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// requireApp returns the app or an error when initialization was skipped.
func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
