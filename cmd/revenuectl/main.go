// Command revenuectl serves the revenue dashboard and prints its derived
// tables from the terminal.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
	"github.com/goliatone/go-revenue-dashboard/internal/logger"
	"github.com/goliatone/go-revenue-dashboard/pkg/analytics"
)

type cli struct {
	LogLevel     string `name:"log-level" env:"REVENUE_LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Dataset      string `type:"existingfile" env:"REVENUE_DATASET" xor:"dataset" help:"YAML dataset replacing the embedded sample data."`
	DatasetURL   string `name:"dataset-url" env:"REVENUE_DATASET_URL" xor:"dataset" help:"BI base URL; the snapshot is read from <url>/revenue/snapshot."`
	DatasetToken string `name:"dataset-token" env:"REVENUE_DATASET_TOKEN" help:"Bearer token for --dataset-url."`

	Serve  serveCmd  `cmd:"" help:"Serve the dashboard over HTTP."`
	Table  tableCmd  `cmd:"" help:"Print the performance table with optional sort and filter."`
	Funnel funnelCmd `cmd:"" help:"Print the revenue funnel projection."`
}

// appEnv carries what every subcommand needs.
type appEnv struct {
	log         *slog.Logger
	out         io.Writer
	datasetPath string
	snapshots   analytics.SnapshotClient
}

func (e *appEnv) dataset(ctx context.Context) (*revenue.Dataset, error) {
	switch {
	case e.snapshots != nil:
		ds, err := e.snapshots.FetchSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		e.log.Debug("dataset loaded", "source", ds.Source)
		return ds, nil
	case e.datasetPath != "":
		return revenue.ReadDataset(e.datasetPath)
	default:
		return revenue.DefaultDataset()
	}
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("revenuectl"),
		kong.Description("Revenue dashboard server and reporting utility."),
		kong.UsageOnError(),
	)

	logger.Level.SetByName(args.LogLevel)
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &appEnv{log: log, out: os.Stdout, datasetPath: args.Dataset}
	if args.DatasetURL != "" {
		client, err := analytics.NewHTTPClient(analytics.HTTPConfig{
			BaseURL: args.DatasetURL,
			APIKey:  args.DatasetToken,
		})
		kctx.FatalIfErrorf(err)
		env.snapshots = client
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(env))
}
