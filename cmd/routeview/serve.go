package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/routeview/internal/config"
	"github.com/vango-dev/routeview/internal/dev"
	"github.com/vango-dev/routeview/pkg/middleware"
	"github.com/vango-dev/routeview/pkg/routes"
	"github.com/vango-dev/routeview/pkg/server"
)

type serveOptions struct {
	dir     string
	port    int
	host    string
	watch   bool
	metrics bool
	trace   bool

	traceExporter string
	traceOut      io.Writer
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start the preview server for the project configuration.

Pages are rendered on the server with their loader data. Live sessions
connect to /_routeview/ws and receive every paint.

Examples:
  routeview serve
  routeview serve --port=8080 --watch
  routeview serve --config ./site --metrics
  routeview serve --trace --trace-exporter=global`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.traceOut = cmd.ErrOrStderr()
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "config", "c", "", "Directory holding routeview.yaml or routeview.json")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload routes when the config file changes")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Expose Prometheus metrics (default from config)")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Record an OpenTelemetry span per loader call")
	cmd.Flags().StringVar(&opts.traceExporter, "trace-exporter", TraceExporterStdout,
		"Span exporter: stdout writes spans to stderr, global uses the provider installed by the embedding program")

	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.Default()

	cfg, err := loadProject(opts.dir)
	if err != nil {
		return err
	}
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.metrics {
		cfg.Server.Metrics = true
	}

	table, comps, _, err := buildTree(cfg)
	if err != nil {
		return err
	}

	loaderMW := []routes.LoaderMiddleware{middleware.Logging(logger)}
	if opts.trace {
		tp, shutdown, err := setupTracing(opts.traceExporter, opts.traceOut)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("trace flush failed", "error", err)
			}
		}()
		loaderMW = append(loaderMW, middleware.OpenTelemetry(
			middleware.WithTracerProvider(tp),
			middleware.WithIncludePath(true),
		))
	}

	srvCfg := server.Config{
		Routes:           table,
		Components:       comps,
		Basename:         cfg.Basename,
		Title:            cfg.Name,
		MountID:          cfg.MountElementID,
		UseStream:        cfg.UseStream,
		LoaderMiddleware: loaderMW,
		Hooks:            middleware.LogRouteChanges(logger),
		Logger:           logger,
	}
	if cfg.Server.Metrics {
		reg := prometheus.NewRegistry()
		srvCfg.Metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
		srvCfg.MetricsPath = cfg.Server.MetricsPath
		srvCfg.Gatherer = reg
	}
	srv := server.New(srvCfg)

	if opts.watch {
		w, err := dev.NewWatcher(dev.WatcherConfig{Paths: []string{cfg.Path()}})
		if err != nil {
			return err
		}
		defer w.Stop()
		w.OnChange(func(c dev.Change) {
			reload(srv, c, logger)
		})
		go func() {
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("watcher stopped", "error", err)
			}
		}()
		info("Watching %s", cfg.Path())
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	success("Serving %d routes at http://%s", table.Len(), addr)
	return srv.Run(addr)
}

// reload rebuilds the site from a changed config file. Invalid files keep
// the current site.
func reload(srv *server.Server, c dev.Change, logger *slog.Logger) {
	if c.Type == dev.ChangeRemove {
		logger.Warn("config file removed, keeping current routes", "path", c.Path)
		return
	}
	cfg, err := config.LoadFile(c.Path)
	if err != nil {
		logger.Error("config reload failed", "path", c.Path, "error", err)
		return
	}
	table, comps, _, err := buildTree(cfg)
	if err != nil {
		logger.Error("config reload failed", "path", c.Path, "error", err)
		return
	}
	srv.SetSite(table, comps)
	success("Reloaded %d routes", table.Len())
}
