package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lattice-markets/depthagg/internal/broadcaster"
	"github.com/lattice-markets/depthagg/internal/buildinfo"
	"github.com/lattice-markets/depthagg/internal/config"
	"github.com/lattice-markets/depthagg/internal/connector"
	"github.com/lattice-markets/depthagg/internal/merger"
	"github.com/lattice-markets/depthagg/internal/model"
	"github.com/lattice-markets/depthagg/internal/rpcserver"
	"github.com/lattice-markets/depthagg/pkg/logger"
)

// sinkCapacity bounds the connector-to-merger channel. It is large enough
// to absorb a burst on one exchange while the merger drains the other.
const sinkCapacity = 1024

func main() {
	configPath := flag.String("c", "", "path to the configuration file (required)")
	showVersion := flag.Bool("version", false, "print version and exit")
	dev := flag.Bool("dev", false, "enable human-readable development logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `depthagg-server streams a consolidated cross-exchange order book
over gRPC, merging Binance and Bitstamp depth feeds into one top-of-book view.

Usage:
  depthagg-server -c config.yml

`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.String())
		return
	}

	logger.InitLogger(*dev)
	log := logger.Get()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *log); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("exited with error")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var seq model.SequenceCounter
	sink := make(chan model.OrderBook, sinkCapacity)

	broker := broadcaster.New(log)
	m := merger.New(sink, broker, log)

	binance := connector.NewBinance(cfg.Binance.Symbol, sink, &seq, log)
	bitstamp := connector.NewBitstamp(cfg.Bitstamp.Symbol, sink, &seq, log)

	srv := rpcserver.New(broker, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return binance.Run(gctx) })
	g.Go(func() error { return bitstamp.Run(gctx) })
	g.Go(func() error { return m.Run(gctx) })
	g.Go(func() error { return rpcserver.Serve(gctx, cfg.GRPCListenAddr, srv, log) })

	return g.Wait()
}
