// Command btdemo runs a guard agent behavior tree under the configured
// runtime and exports its final state.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/internal/config"
	"github.com/comalice/behaviortreex/internal/observability"
	"github.com/comalice/behaviortreex/internal/production"
	"github.com/comalice/behaviortreex/interop"
	"github.com/comalice/behaviortreex/scheduler"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML or TOML config file")
		mode        = flag.String("mode", "sync", "tree layout: sync, cooperative, arena, shared or interop")
		dotPath     = flag.String("dot", "", "write the final tree as Graphviz DOT to this file")
		snapshotDir = flag.String("snapshots", "", "persist the final tree snapshot as YAML under this directory")
	)
	flag.Parse()

	if err := run(*configPath, *mode, *dotPath, *snapshotDir); err != nil {
		log.Error().Err(err).Msg("btdemo failed")
		os.Exit(1)
	}
}

func run(configPath, mode, dotPath, snapshotDir string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	logger, err := observability.InitLogger("btdemo", cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics.Addr, logger)
		defer srv.Shutdown(context.Background())
	}

	events := make(chan production.PublishedEvent, 64)
	publisher := production.NewChannelPublisher(events)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range events {
			logger.Trace().Str("kind", string(ev.Kind)).Str("behavior", ev.Behavior).
				Stringer("status", ev.Status).Uint64("round", ev.Round).Msg("event")
		}
	}()

	opts := []scheduler.Option{scheduler.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		observability.RegisterMetrics()
		opts = append(opts, scheduler.WithObserver(observability.NewSchedulerMetrics()))
	}
	opts = append(opts, scheduler.WithObserver(publisher))
	sched := scheduler.New(opts...)

	g := &guard{logger: logger, enemyAt: 4}
	var root btx.Behavior
	switch mode {
	case "sync", "interop":
		root, err = g.tree(logger)
	case "cooperative":
		root = g.cooperativeTree(sched, logger)
	case "arena":
		root, err = g.arenaTree(cfg.Arena.Capacity)
	case "shared":
		root = g.sentries()
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}

	var status btx.Status
	if mode == "interop" {
		status, err = runTicker(ctx, cfg.Scheduler.TickRate, root)
	} else {
		status, err = scheduler.NewRunner(sched, scheduler.Config{
			TickRate: cfg.Scheduler.TickRate,
			MaxTicks: cfg.Scheduler.MaxTicks,
		}).Run(ctx, root)
	}
	publisher.Close()
	<-drained
	if publisher.Dropped() > 0 {
		logger.Warn().Uint64("dropped", publisher.Dropped()).Msg("events dropped")
	}
	if err != nil {
		return err
	}
	logger.Info().Str("mode", mode).Stringer("status", status).Int("patrols", g.patrols).Msg("guard done")

	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(production.ExportDOT(root)), 0o644); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
	}
	if snapshotDir != "" {
		p, err := production.NewYAMLPersister(snapshotDir)
		if err != nil {
			return err
		}
		if err := p.Save(ctx, "guard-"+mode, production.Take(root)); err != nil {
			return err
		}
	}
	return nil
}

func serveMetrics(addr string, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server")
		}
	}()
	logger.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}

func runTicker(ctx context.Context, d time.Duration, root btx.Behavior) (btx.Status, error) {
	if d <= 0 {
		d = time.Millisecond
	}
	t := interop.NewTicker(ctx, d, root)
	<-t.Done()
	if root.Status() == btx.Running {
		root.Abort()
	}
	if err := t.Err(); err != nil {
		return btx.Aborted, err
	}
	if t.Status() == btx.Invalid {
		return btx.Aborted, fmt.Errorf("ticker stopped: %w", context.Cause(ctx))
	}
	return t.Status(), nil
}
