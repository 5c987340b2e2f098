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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"

	"github.com/katalvlaran/metatsp/config"
	"github.com/katalvlaran/metatsp/logging"
	"github.com/katalvlaran/metatsp/progress"
	"github.com/katalvlaran/metatsp/tsp"
)

// loadConfig reads --config and applies every flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("stats-file") {
		cfg.Stats.File, _ = flags.GetString("stats-file")
	}
	if flags.Changed("stats-db") {
		cfg.Stats.DB, _ = flags.GetString("stats-db")
	}
	if f := flags.Lookup("algo"); f != nil && f.Changed {
		cfg.Algorithm = f.Value.String()
	}
	if f := flags.Lookup("restarts"); f != nil && f.Changed {
		cfg.Restarts, _ = flags.GetInt("restarts")
	}
	if f := flags.Lookup("cities"); f != nil && f.Changed {
		cfg.Cities.File = f.Value.String()
	}
	if f := flags.Lookup("n"); f != nil && f.Changed {
		cfg.Cities.Count, _ = flags.GetInt("n")
	}
	if f := flags.Lookup("polish"); f != nil && f.Changed {
		cfg.Hybrid.Polish, _ = flags.GetBool("polish")
	}
	if f := flags.Lookup("metrics-addr"); f != nil && f.Changed {
		cfg.Metrics.Addr = f.Value.String()
	}

	if err = cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// newLogger builds the command logger; it writes to the command's stderr.
func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	lc := cfg.Log
	lc.Output = cmd.ErrOrStderr()

	return logging.New(lc)
}

// sinks bundles the progress destinations of one command invocation.
type sinks struct {
	sink    tsp.ProgressSink
	store   *progress.Store
	db      *progress.SQLStore
	metrics *metricsServer
	logger  *slog.Logger
}

// openSinks wires the configured destinations. close must be called.
func openSinks(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sinks, error) {
	s := &sinks{logger: logger}
	all := []tsp.ProgressSink{progress.NewLogSink(logger)}

	if cfg.Stats.File != "" {
		s.store = progress.OpenStore(cfg.Stats.File, logger)
		all = append(all, s.store)
	}
	if cfg.Stats.DB != "" {
		db, err := progress.OpenSQLStore(ctx, cfg.Stats.DB, logger)
		if err != nil {
			return nil, err
		}
		s.db = db
		all = append(all, db)
		logger.Info("recording to database", "path", cfg.Stats.DB, "run_id", db.RunID())
	}
	if cfg.Metrics.Addr != "" {
		ms, err := startMetrics(cfg.Metrics.Addr, logger)
		if err != nil {
			s.close(ctx)
			return nil, err
		}
		s.metrics = ms
		all = append(all, ms.metrics)
	}
	s.sink = progress.NewMulti(all...)

	return s, nil
}

func (s *sinks) close(ctx context.Context) {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("stats not saved", "path", s.store.Path(), "err", err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.metrics != nil {
		s.metrics.shutdown(ctx)
	}
}

// metricsServer exposes a private registry on /metrics.
type metricsServer struct {
	srv     *http.Server
	metrics *progress.Metrics
	logger  *slog.Logger
}

func startMetrics(addr string, logger *slog.Logger) (*metricsServer, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen %s: %w", addr, err)
	}
	ms := &metricsServer{
		srv:     &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		metrics: progress.NewMetrics(reg),
		logger:  logger,
	}
	go func() {
		if err := ms.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return ms, nil
}

func (m *metricsServer) shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := m.srv.Shutdown(ctx); err != nil {
		m.logger.Warn("metrics server shutdown", "err", err)
	}
}

// writeJSON writes v as one line of JSON.
func writeJSON(w io.Writer, v any) error {
	raw, err := sonnet.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)

	return err
}
