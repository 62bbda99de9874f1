package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/newtab/internal/config"
	"github.com/vango-dev/newtab/internal/errors"
	"github.com/vango-dev/newtab/pkg/experiments"
	"github.com/vango-dev/newtab/pkg/middleware"
	"github.com/vango-dev/newtab/pkg/server"
	"github.com/vango-dev/newtab/pkg/store"
)

type serveOptions struct {
	configPath  string
	port        int
	host        string
	experiments string
	region      string
	logLevel    string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the new-tab server",
		Long: `Start the new-tab server.

Configuration is read from newtab.json in the working directory or a
parent directory, or from --config. Flags override file values. Without
a config file the server starts with defaults and no sites.

The experiment document is loaded once at startup. When it cannot be
loaded the page renders without an experiment.

Examples:
  newtab serve
  newtab serve --port=8080
  newtab serve --experiments=s3://newtab-experiments/current.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to newtab.json")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from newtab.json)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from newtab.json)")
	cmd.Flags().StringVar(&opts.experiments, "experiments", "", "Experiment source: path, file:// or s3://bucket/key")
	cmd.Flags().StringVar(&opts.region, "region", "", "AWS region for s3:// experiment sources")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return cmd
}

// loadConfig applies flag overrides to the file configuration.
func loadConfig(opts serveOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.HasCode(err, "E100") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.experiments != "" {
		cfg.Experiments.Source = opts.experiments
	}
	if opts.region != "" {
		cfg.Experiments.Region = opts.region
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newStore builds the store with the configured middleware.
func newStore(cfg *config.Config, logger *slog.Logger) *store.Store {
	st := store.New(
		store.WithLogger(logger),
		store.WithInitialState(store.State{Sites: cfg.StoreSites()}),
	)
	if cfg.Metrics.Enabled {
		st.Use(middleware.Prometheus(metricsOptions(cfg.Metrics)...))
	}
	if cfg.Tracing.Enabled {
		st.Use(middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}
	return st
}

// metricsOptions maps the metrics section of newtab.json to middleware options.
func metricsOptions(m config.MetricsConfig) []middleware.MetricsOption {
	opts := []middleware.MetricsOption{
		middleware.WithNamespace(m.Namespace),
		middleware.WithSubsystem(m.Subsystem),
	}
	if len(m.Labels) > 0 {
		opts = append(opts, middleware.WithConstLabels(prometheus.Labels(m.Labels)))
	}
	if len(m.Buckets) > 0 {
		opts = append(opts, middleware.WithBuckets(m.Buckets))
	}
	return opts
}

// loadExperiments installs the experiment snapshot. Failures leave the
// store marked as errored and are only logged.
func loadExperiments(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) error {
	src, err := experiments.Open(ctx, cfg.Experiments.Source, experiments.OpenOptions{Region: cfg.Experiments.Region})
	if err != nil {
		return errors.New("E200").
			WithDetail("experiments.source is " + cfg.Experiments.Source).
			Wrap(err)
	}
	if err := experiments.Apply(ctx, st, src); err != nil {
		logger.Warn("experiments unavailable, rendering without an experiment",
			"source", cfg.Experiments.Source,
			"error", errors.FromError(err, "E201"))
		return nil
	}

	snap := experiments.Current(st)
	logger.Info("experiments loaded", "id", snap.ID, "reverse_menu_options", snap.ReverseMenuOptions)
	return nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	st := newStore(cfg, logger)
	if err := loadExperiments(ctx, cfg, st, logger); err != nil {
		return err
	}

	read, write := cfg.Timeouts()
	srvCfg := &server.Config{
		Address:      cfg.Address(),
		Title:        cfg.Title,
		Page:         cfg.Page,
		ReadTimeout:  read,
		WriteTimeout: write,
	}
	if cfg.Metrics.Enabled {
		srvCfg.MetricsPath = cfg.Metrics.Path
	}

	success("newtab %s", version)
	info("Listening on %s", cfg.URL())
	if cfg.Path() != "" {
		info("Config %s", cfg.Path())
	}

	return server.New(st, srvCfg, server.WithLogger(logger)).Run(ctx)
}
