package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/cli"
	"github.com/bnema/veil/internal/infrastructure/httpapi"
	"github.com/bnema/veil/internal/infrastructure/metrics"
	"github.com/bnema/veil/internal/infrastructure/sink"
	"github.com/bnema/veil/internal/logging"
)

var (
	serveListen string
	serveNoFile bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stylesheet over HTTP and keep the output file in sync",
	Long: `Run the reactive driver and serve its result over HTTP.

Routes:
  GET  /veil.css   current stylesheet (ETag, 503 until the first compile)
  GET  /rules      stored rules as a JSON document
  POST /preview    {"selector": ".post", "intensity": 30, "commit": false}
  GET  /healthz    liveness and version
  GET  /metrics    Prometheus metrics

The configured output file is written as well unless --no-file is given.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default server.listen)")
	serveCmd.Flags().BoolVar(&serveNoFile, "no-file", false, "serve over HTTP only")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithComponent(ctx, "serve")

	mem := sink.NewMemorySink()
	wrap := func(f *sink.FileSink) port.StylesheetSink {
		if serveNoFile {
			return mem
		}
		return sink.NewMultiSink(mem, f)
	}

	out, err := cli.NewOutputSink(a.Config)
	if err != nil {
		return err
	}
	if err := a.Live(ctx, wrap(out)); err != nil {
		return err
	}

	listen := a.Config.Server.Listen
	if serveListen != "" {
		listen = serveListen
	}

	handler := httpapi.NewHandler(mem, a.Rules, a.Preview, a.BuildInfo)
	engine := httpapi.NewServer(ctx, handler, metrics.Handler(metrics.NewRegistry(a.Metrics)))

	return runDriver(ctx, a, wrap, func(ctx context.Context) error {
		return httpapi.ListenAndServe(ctx, listen, engine)
	})
}
