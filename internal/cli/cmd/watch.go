package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/cli"
	"github.com/bnema/veil/internal/infrastructure/sink"
	"github.com/bnema/veil/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the output file in sync with the stored rules",
	Long: `Compile the rules into the configured output file, then recompile on
every change until interrupted. Changes made by other veil processes are
picked up too. Editing the output section of config.toml switches the
output file without a restart.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithComponent(ctx, "watch")

	out, err := cli.NewOutputSink(a.Config)
	if err != nil {
		return err
	}
	if err := a.Live(ctx, out); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Str("path", out.Path()).
		Str("format", string(a.Config.Output.Format)).
		Msg("watching rules")

	return runDriver(ctx, a, func(f *sink.FileSink) port.StylesheetSink { return f })
}

// runDriver runs the reactive driver next to the config follower until ctx
// is done or either fails.
func runDriver(ctx context.Context, a *cli.App, wrap func(*sink.FileSink) port.StylesheetSink, extra ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Apply.Run(gctx, a.Changes)
	})
	g.Go(func() error {
		return a.FollowOutput(gctx, wrap)
	})
	for _, fn := range extra {
		g.Go(func() error { return fn(gctx) })
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("driver stopped: %w", err)
	}
	return nil
}
