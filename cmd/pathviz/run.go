package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/controller"
	"github.com/katalvlaran/pathviz/metrics"
)

type runOptions struct {
	metricsListen string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive visualizer",
		Long: `run opens the grid in the terminal. Drag with the left button to draw
or erase walls, or to move the source and goal. Press space to start.

Logs go to log.file; without one they are discarded because the terminal
belongs to the viewer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViewer(cmd, root, o)
		},
	}
	cmd.Flags().StringVar(&o.metricsListen, "metrics-listen", "", "serve Prometheus metrics on host:port (overrides metrics.listen)")
	return cmd
}

func runViewer(cmd *cobra.Command, root *rootOptions, o *runOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("metrics-listen") {
		cfg.Metrics.Listen = o.metricsListen
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, closeLog, err := newLogger(cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	g, err := cfg.BuildGrid()
	if err != nil {
		return err
	}

	opts := []controller.Option{
		controller.WithSettings(settings),
		controller.WithLogger(logger),
	}
	if cfg.Metrics.Listen != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		coll, err := metrics.NewCollector(reg)
		if err != nil {
			return err
		}
		stop, err := serveMetrics(cfg.Metrics.Listen, reg, logger)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, controller.WithObserver(coll))
	}

	ctl, err := controller.NewController(g, opts...)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create the screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize the screen: %w", err)
	}
	defer screen.Fini()

	logger.Info("Viewer started",
		slog.Int("width", g.Width()),
		slog.Int("height", g.Height()),
	)
	return newViewer(screen, ctl, cfg.Search.Weight, logger).run(cmd.Context())
}

// serveMetrics exposes reg on /metrics. The listener is bound before
// returning so an unusable address fails the command up front.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	logger.Info("Metrics server listening", slog.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
